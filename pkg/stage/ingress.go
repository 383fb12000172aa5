package stage

import (
	"context"

	"github.com/ib-77/pipetag/pkg/cid"
	"github.com/ib-77/pipetag/pkg/rop"
	"github.com/ib-77/pipetag/pkg/rop/mass"
)

// Request is what an ingress collaborator hands in: the routing fields of a
// unit of work and its payload.
type Request[T any] struct {
	ClientID int64
	QueryID  int64
	ShardID  int64
	AppID    int64
	Payload  T
}

// Ingress tags the payload with the correlation encoded from the request fields.
func Ingress[T any](_ context.Context, req Request[T]) rop.Result[T] {
	id, err := cid.Encode(req.ClientID, req.QueryID, req.ShardID, req.AppID)
	if err != nil {
		return rop.Fail[T](err)
	}
	return rop.Tagged(id, req.Payload)
}

// IngressStage is Ingress as a lite engine.
func IngressStage[T any]() func(ctx context.Context, input rop.Result[Request[T]]) <-chan rop.Result[T] {
	return func(ctx context.Context, input rop.Result[Request[T]]) <-chan rop.Result[T] {
		return mass.Switching(ctx, input, Ingress[T], nil)
	}
}
