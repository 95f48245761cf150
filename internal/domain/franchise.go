package domain

import "time"

// ApplicationStatus описывает статус заявки на франшизу.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// FranchiseApplication — заявка пользователя на открытие франшизы.
type FranchiseApplication struct {
	ID          string            `json:"id"`
	UserID      string            `json:"userId"`
	CompanyName string            `json:"companyName"`
	Address     string            `json:"address,omitempty"`
	Phone       string            `json:"phone,omitempty"`
	Status      ApplicationStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// ApplicationView — заявка с присоединёнными данными заявителя.
type ApplicationView struct {
	FranchiseApplication
	ApplicantEmail   string `json:"applicantEmail,omitempty"`
	ApplicantCompany string `json:"applicantCompany,omitempty"`
}
