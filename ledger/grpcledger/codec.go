package grpcledger

import (
	"encoding/base64"
	"fmt"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/piprs/piprs/ledger"
)

// Struct field names for the Quote reply and Transfer request.
// Binary fields are base64 (std, padded) strings; times are RFC 3339.
const (
	fieldSourceAmount     = "source_amount"
	fieldConnectorAccount = "connector_account"
	fieldExpiresAt        = "expires_at"

	fieldID        = "id"
	fieldPacket    = "ilp"
	fieldCondition = "execution_condition"
	fieldAmount    = "amount"
	fieldTo        = "to"
)

func quoteToStruct(q ledger.Quote) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		fieldSourceAmount:     q.SourceAmount,
		fieldConnectorAccount: q.ConnectorAccount,
		fieldExpiresAt:        q.ExpiresAt.UTC().Format(time.RFC3339Nano),
	})
}

func quoteFromStruct(s *structpb.Struct) (ledger.Quote, error) {
	var q ledger.Quote
	var err error
	if q.SourceAmount, err = stringField(s, fieldSourceAmount); err != nil {
		return ledger.Quote{}, err
	}
	if q.ConnectorAccount, err = stringField(s, fieldConnectorAccount); err != nil {
		return ledger.Quote{}, err
	}
	if q.ExpiresAt, err = timeField(s, fieldExpiresAt); err != nil {
		return ledger.Quote{}, err
	}
	return q, nil
}

func transferToStruct(t ledger.Transfer) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		fieldID:        t.ID,
		fieldPacket:    base64.StdEncoding.EncodeToString(t.Packet),
		fieldCondition: base64.StdEncoding.EncodeToString(t.ExecutionCondition),
		fieldAmount:    t.Amount,
		fieldTo:        t.To,
		fieldExpiresAt: t.ExpiresAt.UTC().Format(time.RFC3339Nano),
	})
}

func transferFromStruct(s *structpb.Struct) (ledger.Transfer, error) {
	var t ledger.Transfer
	var err error
	if t.ID, err = stringField(s, fieldID); err != nil {
		return ledger.Transfer{}, err
	}
	if t.Packet, err = bytesField(s, fieldPacket); err != nil {
		return ledger.Transfer{}, err
	}
	if t.ExecutionCondition, err = bytesField(s, fieldCondition); err != nil {
		return ledger.Transfer{}, err
	}
	if t.Amount, err = stringField(s, fieldAmount); err != nil {
		return ledger.Transfer{}, err
	}
	if t.To, err = stringField(s, fieldTo); err != nil {
		return ledger.Transfer{}, err
	}
	if t.ExpiresAt, err = timeField(s, fieldExpiresAt); err != nil {
		return ledger.Transfer{}, err
	}
	return t, nil
}

func stringField(s *structpb.Struct, name string) (string, error) {
	v, ok := s.GetFields()[name]
	if !ok {
		return "", fmt.Errorf("grpcledger: missing field %q", name)
	}
	sv, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("grpcledger: field %q is not a string", name)
	}
	return sv.StringValue, nil
}

func bytesField(s *structpb.Struct, name string) ([]byte, error) {
	enc, err := stringField(s, name)
	if err != nil {
		return nil, err
	}
	b, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return nil, fmt.Errorf("grpcledger: field %q is not base64: %w", name, err)
	}
	return b, nil
}

func timeField(s *structpb.Struct, name string) (time.Time, error) {
	enc, err := stringField(s, name)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, enc)
	if err != nil {
		return time.Time{}, fmt.Errorf("grpcledger: field %q is not RFC 3339: %w", name, err)
	}
	return t, nil
}
