package service

// Fully-qualified service names.
const (
	ClientServiceName  = "feeledger.v1.ClientService"
	FeeServiceName     = "feeledger.v1.FeeService"
	PaymentServiceName = "feeledger.v1.PaymentService"
	LedgerServiceName  = "feeledger.v1.LedgerService"
)

// Procedure paths, as they appear in the URL and in the Spec of a request.
const (
	ClientServiceCreateClientProcedure = "/" + ClientServiceName + "/CreateClient"
	ClientServiceGetClientProcedure    = "/" + ClientServiceName + "/GetClient"
	ClientServiceListClientsProcedure  = "/" + ClientServiceName + "/ListClients"
	ClientServiceUpdateClientProcedure = "/" + ClientServiceName + "/UpdateClient"
	ClientServiceDeleteClientProcedure = "/" + ClientServiceName + "/DeleteClient"

	FeeServiceCreateFeeProcedure = "/" + FeeServiceName + "/CreateFee"
	FeeServiceGetFeeProcedure    = "/" + FeeServiceName + "/GetFee"
	FeeServiceListFeesProcedure  = "/" + FeeServiceName + "/ListFees"
	FeeServiceUpdateFeeProcedure = "/" + FeeServiceName + "/UpdateFee"
	FeeServiceDeleteFeeProcedure = "/" + FeeServiceName + "/DeleteFee"

	PaymentServiceCreatePaymentProcedure = "/" + PaymentServiceName + "/CreatePayment"
	PaymentServiceGetPaymentProcedure    = "/" + PaymentServiceName + "/GetPayment"
	PaymentServiceListPaymentsProcedure  = "/" + PaymentServiceName + "/ListPayments"
	PaymentServiceUpdatePaymentProcedure = "/" + PaymentServiceName + "/UpdatePayment"
	PaymentServiceDeletePaymentProcedure = "/" + PaymentServiceName + "/DeletePayment"

	LedgerServiceRecomputeProcedure = "/" + LedgerServiceName + "/Recompute"
	LedgerServiceReconcileProcedure = "/" + LedgerServiceName + "/Reconcile"
)
