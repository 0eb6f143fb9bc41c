package postgres

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/feeledger/internal/models"
)

type clientRow struct {
	ID        int64           `gorm:"primaryKey"`
	Name      string          `gorm:"not null"`
	Email     string          `gorm:"not null;default:''"`
	Phone     string          `gorm:"not null;default:''"`
	TotalDue  decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0"`
	TotalPaid decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0"`
	Status    string          `gorm:"not null;default:'active'"`
}

func (clientRow) TableName() string { return "clients" }

func (r *clientRow) model() *models.Client {
	return &models.Client{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		TotalDue:  r.TotalDue,
		TotalPaid: r.TotalPaid,
		Status:    r.Status,
	}
}

type feeRow struct {
	ID          int64           `gorm:"primaryKey"`
	ClientID    int64           `gorm:"not null;index"`
	Description string          `gorm:"not null;default:''"`
	Amount      decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0"`
	DueDate     string          `gorm:"not null;default:''"`
	Category    string          `gorm:"not null;default:''"`
	Status      string          `gorm:"not null;default:'pending'"`
	IsRecurring bool            `gorm:"not null;default:false"`
	Note        string          `gorm:"not null;default:''"`
}

func (feeRow) TableName() string { return "fees" }

func (r *feeRow) model() *models.Fee {
	status := models.FeeStatus(r.Status)
	if status == "" {
		status = models.FeeStatusPending
	}
	return &models.Fee{
		ID:          r.ID,
		ClientID:    r.ClientID,
		Description: r.Description,
		Amount:      r.Amount,
		DueDate:     r.DueDate,
		Category:    r.Category,
		Status:      status,
		IsRecurring: r.IsRecurring,
		Note:        r.Note,
	}
}

type paymentRow struct {
	ID          int64           `gorm:"primaryKey"`
	FeeID       int64           `gorm:"not null;index"`
	Amount      decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0"`
	PaymentDate string          `gorm:"not null;default:''"`
	Method      string          `gorm:"not null;default:''"`
	Reference   string          `gorm:"not null;default:''"`
}

func (paymentRow) TableName() string { return "payments" }

func (r *paymentRow) model() *models.Payment {
	return &models.Payment{
		ID:          r.ID,
		FeeID:       r.FeeID,
		Amount:      r.Amount,
		PaymentDate: r.PaymentDate,
		Method:      r.Method,
		Reference:   r.Reference,
	}
}
