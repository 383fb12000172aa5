package cid

import (
	"fmt"

	"github.com/ccoveille/go-safecast"
	"golang.org/x/exp/constraints"
)

// Field widths in bits, most significant field first.
const (
	ClientIDBits = 16
	QueryIDBits  = 8
	ShardIDBits  = 8
	AppIDBits    = 32
)

const (
	clientIDShift = QueryIDBits + ShardIDBits + AppIDBits // 48
	queryIDShift  = ShardIDBits + AppIDBits               // 40
	shardIDShift  = AppIDBits                             // 32
	appIDShift    = 0
)

const (
	MaxClientID = 1<<ClientIDBits - 1
	MaxQueryID  = 1<<QueryIDBits - 1
	MaxShardID  = 1<<ShardIDBits - 1
	MaxAppID    = 1<<AppIDBits - 1
)

// Integer is every integer type Encode accepts. Pointer-sized uintptr is left out.
type Integer interface {
	constraints.Signed | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// ID is a composite correlation identifier: clientId, queryId, shardId and appId
// packed into 64 bits from the most significant bit down.
//
// Every uint64 is a well-formed ID. The zero value encodes the all-zero tuple.
type ID uint64

// Fields is the decoded 4-tuple of an ID.
type Fields struct {
	ClientID uint16
	QueryID  uint8
	ShardID  uint8
	AppID    uint32
}

// Encode packs the four fields into an ID.
//
// Any integer type is accepted so that values read from configuration or
// discovery can be passed as they are. A negative value or a value wider than
// its field yields a *RangeError; nothing is truncated.
func Encode[T Integer](clientID, queryID, shardID, appID T) (ID, error) {
	client, err := safecast.ToUint16(clientID)
	if err != nil {
		return 0, newRangeError(FieldClientID, clientID, MaxClientID, err)
	}

	query, err := safecast.ToUint8(queryID)
	if err != nil {
		return 0, newRangeError(FieldQueryID, queryID, MaxQueryID, err)
	}

	shard, err := safecast.ToUint8(shardID)
	if err != nil {
		return 0, newRangeError(FieldShardID, shardID, MaxShardID, err)
	}

	app, err := safecast.ToUint32(appID)
	if err != nil {
		return 0, newRangeError(FieldAppID, appID, MaxAppID, err)
	}

	return Pack(Fields{ClientID: client, QueryID: query, ShardID: shard, AppID: app}), nil
}

// MustEncode is like Encode but panics on a range error.
func MustEncode[T Integer](clientID, queryID, shardID, appID T) ID {
	id, err := Encode(clientID, queryID, shardID, appID)
	if err != nil {
		panic(err)
	}
	return id
}

// Pack builds an ID from already typed fields. It cannot fail.
func Pack(f Fields) ID {
	return ID(uint64(f.ClientID)<<clientIDShift |
		uint64(f.QueryID)<<queryIDShift |
		uint64(f.ShardID)<<shardIDShift |
		uint64(f.AppID)<<appIDShift)
}

// Decode splits an ID into its fields. Decode is total.
func Decode(id ID) Fields {
	v := uint64(id)
	return Fields{
		ClientID: uint16((v >> clientIDShift) & MaxClientID),
		QueryID:  uint8((v >> queryIDShift) & MaxQueryID),
		ShardID:  uint8((v >> shardIDShift) & MaxShardID),
		AppID:    uint32((v >> appIDShift) & MaxAppID),
	}
}

// DecodeUint64 decodes a raw 64-bit value.
func DecodeUint64(v uint64) Fields {
	return Decode(ID(v))
}

// JoinClient rebuilds a clientId from its high and low bytes.
func JoinClient(high, low uint8) uint16 {
	return uint16(high)<<8 | uint16(low)
}

func (id ID) ClientID() uint16 { return Decode(id).ClientID }

func (id ID) QueryID() uint8 { return Decode(id).QueryID }

func (id ID) ShardID() uint8 { return Decode(id).ShardID }

func (id ID) AppID() uint32 { return Decode(id).AppID }

// ClientHigh returns the high byte of the clientId.
func (id ID) ClientHigh() uint8 { return Decode(id).ClientHigh() }

// ClientLow returns the low byte of the clientId.
func (id ID) ClientLow() uint8 { return Decode(id).ClientLow() }

func (id ID) Fields() Fields { return Decode(id) }

func (id ID) Uint64() uint64 { return uint64(id) }

func (id ID) IsZero() bool { return id == 0 }

// ID packs the fields. Same as Pack(f).
func (f Fields) ID() ID { return Pack(f) }

func (f Fields) ClientHigh() uint8 { return uint8(f.ClientID >> 8) }

func (f Fields) ClientLow() uint8 { return uint8(f.ClientID) }

func (f Fields) String() string {
	return fmt.Sprintf("client=%d query=%d shard=%d app=%d", f.ClientID, f.QueryID, f.ShardID, f.AppID)
}
