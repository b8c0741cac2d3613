package grpcledger

import (
	"context"

	"google.golang.org/grpc/metadata"
)

// Account credentials are carried as request metadata so the message bodies
// stay purely about payment payload.
const (
	accountHeader  = "piprs-account"
	passwordHeader = "piprs-password"
)

func withCredentials(ctx context.Context, account, password string) context.Context {
	return metadata.AppendToOutgoingContext(ctx,
		accountHeader, account,
		passwordHeader, password,
	)
}

func credentialsFromContext(ctx context.Context) (account, password string, ok bool) {
	md, got := metadata.FromIncomingContext(ctx)
	if !got {
		return "", "", false
	}
	accounts := md.Get(accountHeader)
	passwords := md.Get(passwordHeader)
	if len(accounts) != 1 || len(passwords) != 1 || accounts[0] == "" {
		return "", "", false
	}
	return accounts[0], passwords[0], true
}
