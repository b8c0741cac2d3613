package grpcledger

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/piprs/piprs/ledger"
)

func mapRPC(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.Unauthenticated:
		return ledger.ErrCredentialRejected
	case codes.FailedPrecondition:
		// Server uses FailedPrecondition when no route/price resolves.
		return ledger.ErrQuoteUnavailable
	case codes.Aborted:
		// Server uses Aborted when the ledger refuses the submission.
		return ledger.ErrSubmitFailed
	default:
		// Best-effort: if the server sent a known ledger error message, preserve it.
		switch st.Message() {
		case ledger.ErrCredentialRejected.Error():
			return ledger.ErrCredentialRejected
		case ledger.ErrQuoteUnavailable.Error():
			return ledger.ErrQuoteUnavailable
		case ledger.ErrSubmitFailed.Error():
			return ledger.ErrSubmitFailed
		default:
			return err
		}
	}
}
