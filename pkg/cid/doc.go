// Package cid implements the composite correlation identifier: four routing
// attributes of a unit of work packed into a single uint64.
//
// Layout, most significant bit first:
//
//	| clientId 16 | queryId 8 | shardId 8 | appId 32 |
//
// The fields cover all 64 bits, so Decode accepts any value. Encode rejects
// inputs that do not fit their field with a *RangeError.
//
//	id, err := cid.Encode(1, 2, 3, 4) // 283686884868100
//	f := cid.Decode(id)                // {ClientID:1 QueryID:2 ShardID:3 AppID:4}
//
// An ID is an immutable value and is safe to share between goroutines.
package cid
