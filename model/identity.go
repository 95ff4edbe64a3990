package model

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// modelSeq is the process-wide MODEL_ID counter. It is a package-level
// atomic rather than living on a per-factory context: this module has no
// multi-tenant factory type, so the simpler global counter is sufficient.
var modelSeq atomic.Uint64

func nextModelID() (id string, seq uint64) {
	n := modelSeq.Add(1)
	return fmt.Sprintf("$model%d", n), n
}

func defaultURI(seq uint64) string {
	return fmt.Sprintf("inmemory://model/%d-%s", seq, uuid.NewString())
}
