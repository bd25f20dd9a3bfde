package store

import (
	"context"
	"errors"

	"velora_back_end/internal/models"

	"github.com/gocql/gocql"
)

type PaymentStore interface {
	Insert(ctx context.Context, p *models.Payment) error
	GetByOrderID(ctx context.Context, orderID string) (*models.Payment, error)
}

// ScyllaPaymentStore écrit les transactions à plat dans la table payments,
// clé de partition order_id (la recherche ne se fait que par ce champ).
type ScyllaPaymentStore struct {
	session *gocql.Session
}

func NewScyllaPaymentStore(session *gocql.Session) *ScyllaPaymentStore {
	return &ScyllaPaymentStore{session: session}
}

func (s *ScyllaPaymentStore) Insert(ctx context.Context, p *models.Payment) error {
	return s.session.Query(`
		INSERT INTO payments (order_id, txn_id, txn_amount, result_status, result_code,
			result_msg, bank_txn_id, txn_type, gateway_name, bank_name, mid,
			payment_mode, refund_amt, txn_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.OrderID, p.TxnID, p.TxnAmount, p.ResultInfo.ResultStatus, p.ResultInfo.ResultCode,
		p.ResultInfo.ResultMsg, p.BankTxnID, p.TxnType, p.GatewayName, p.BankName, p.MID,
		p.PaymentMode, p.RefundAmt, p.TxnDate, p.CreatedAt,
	).WithContext(ctx).Exec()
}

func (s *ScyllaPaymentStore) GetByOrderID(ctx context.Context, orderID string) (*models.Payment, error) {
	var p models.Payment

	err := s.session.Query(`
		SELECT order_id, txn_id, txn_amount, result_status, result_code, result_msg,
			bank_txn_id, txn_type, gateway_name, bank_name, mid, payment_mode,
			refund_amt, txn_date, created_at
		FROM payments WHERE order_id = ?`, orderID,
	).WithContext(ctx).Scan(
		&p.OrderID, &p.TxnID, &p.TxnAmount, &p.ResultInfo.ResultStatus, &p.ResultInfo.ResultCode,
		&p.ResultInfo.ResultMsg, &p.BankTxnID, &p.TxnType, &p.GatewayName, &p.BankName, &p.MID,
		&p.PaymentMode, &p.RefundAmt, &p.TxnDate, &p.CreatedAt,
	)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
