package models

import "gorm.io/gorm"

type Customer struct {
	gorm.Model
	CustomerCode string `json:"customer_code" gorm:"unique" validate:"required"`
	CustomerName string `json:"customer_name" validate:"required"`
	CustAddr1    string `json:"cust_addr1"`
	CustAddr2    string `json:"cust_addr2"`
	CustCity     string `json:"cust_city"`
	CustCountry  string `json:"cust_country"`
	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
	Email        string `json:"email"`
	Remarks      string `json:"remarks"`
	CreatedBy    int
	UpdatedBy    int
	DeletedBy    int
}
