package grpcledger

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/piprs/piprs/ledger"
)

// Server exposes a ledger.Ledger over the Ledger gRPC service.
//
// Every method authenticates the metadata credentials before touching the
// backing ledger, so a connection is only ever as live as its credentials.
type Server struct {
	UnimplementedLedgerServer
	Ledger ledger.Ledger
}

func (s *Server) Auth(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.BoolValue, error) {
	if _, err := s.authenticate(ctx); err != nil {
		return nil, err
	}
	return wrapperspb.Bool(true), nil
}

func (s *Server) Quote(ctx context.Context, in *wrapperspb.BytesValue) (*structpb.Struct, error) {
	account, err := s.authenticate(ctx)
	if err != nil {
		return nil, err
	}
	q, err := s.Ledger.QuoteByPacket(ctx, account, in.GetValue())
	if err != nil {
		return nil, mapErr(err)
	}
	out, err := quoteToStruct(q)
	if err != nil {
		return nil, status.Error(codes.Internal, "quote encoding failed")
	}
	return out, nil
}

func (s *Server) Transfer(ctx context.Context, in *structpb.Struct) (*wrapperspb.BoolValue, error) {
	account, err := s.authenticate(ctx)
	if err != nil {
		return nil, err
	}
	t, err := transferFromStruct(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := s.Ledger.SendTransfer(ctx, account, t); err != nil {
		return nil, mapErr(err)
	}
	return wrapperspb.Bool(true), nil
}

func (s *Server) authenticate(ctx context.Context) (string, error) {
	if s == nil || s.Ledger == nil {
		return "", status.Error(codes.FailedPrecondition, "missing ledger")
	}
	account, password, ok := credentialsFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, ledger.ErrCredentialRejected.Error())
	}
	if err := s.Ledger.Authenticate(ctx, account, password); err != nil {
		return "", status.Error(codes.Unauthenticated, ledger.ErrCredentialRejected.Error())
	}
	return account, nil
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case err == ledger.ErrQuoteUnavailable:
		return status.Error(codes.FailedPrecondition, err.Error())
	case err == ledger.ErrCredentialRejected:
		return status.Error(codes.Unauthenticated, err.Error())
	case err == ledger.ErrSubmitFailed:
		return status.Error(codes.Aborted, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
