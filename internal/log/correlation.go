package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ib-77/pipetag/pkg/cid"
)

// Correlation renders id together with its decoded fields.
func Correlation(id cid.ID) zap.Field {
	return zap.Object("correlation", correlation(id))
}

type correlation cid.ID

func (c correlation) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	id := cid.ID(c)
	enc.AddString("id", id.String())
	enc.AddUint16("client", id.ClientID())
	enc.AddUint8("query", id.QueryID())
	enc.AddUint8("shard", id.ShardID())
	enc.AddUint32("app", id.AppID())
	return nil
}
