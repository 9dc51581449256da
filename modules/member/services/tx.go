package services

import "github.com/pulseworks/pulse-sdk/pkg/composables"

// runInTx is indirected so service tests can run against in-memory
// repositories without a live connection pool.
var runInTx = composables.InTx
