package model

import "context"

type ContextManager interface {
	SetTokenDataToContext(ctx context.Context, data TokenData) context.Context
	GetTokenDataFromContext(ctx context.Context) (TokenData, bool)
}
