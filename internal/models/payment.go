package models

import "time"

type ResultInfo struct {
	ResultStatus string `json:"resultStatus"`
	ResultCode   string `json:"resultCode"`
	ResultMsg    string `json:"resultMsg"`
}

// Payment est un enregistrement de transaction. Il n'a aucun lien structurel
// avec une commande : orderId est une simple chaîne recopiée.
type Payment struct {
	OrderID     string     `json:"orderId"`
	TxnID       string     `json:"txnId"`
	TxnAmount   string     `json:"txnAmount"`
	ResultInfo  ResultInfo `json:"resultInfo"`
	BankTxnID   string     `json:"bankTxnId"`
	TxnType     string     `json:"txnType"`
	GatewayName string     `json:"gatewayName"`
	BankName    string     `json:"bankName"`
	MID         string     `json:"mid"`
	PaymentMode string     `json:"paymentMode"`
	RefundAmt   string     `json:"refundAmt"`
	TxnDate     string     `json:"txnDate"`
	CreatedAt   time.Time  `json:"createdAt"`
}
