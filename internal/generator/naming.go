// internal/generator/naming.go
package generator

import (
	"fmt"
	"math/rand"
	"regexp"
	"sync/atomic"
	"time"
)

const (
	compactSecondsLayout = "20060102150405"
	isoDateLayout        = "2006-01-02"
	isoDateTimeLayout    = "2006-01-02T15:04:05"
)

// Classification codes describing batch/transaction multiplicity. The code
// becomes part of the output filename.
const (
	ClassSDSC  = "SDSC"  // single batch, single transaction
	ClassSDMC  = "SDMC"  // single batch, multiple transactions
	ClassMSDSC = "MSDSC" // multiple batches, one transaction each
	ClassMDMC  = "MDMC"  // multiple batches, multiple transactions
)

// msgIDSeq feeds the 3-digit suffix of minted message identifiers. Seeded
// randomly at startup so successive runs don't repeat suffixes, advanced
// atomically so copies minted within the same second stay distinct.
var msgIDSeq atomic.Uint64

func init() {
	msgIDSeq.Store(rand.Uint64())
}

// MintMessageID builds a fresh message identifier: a compact timestamp
// plus a 3-digit discriminator. IDs minted within the same second differ
// in the discriminator; callers must not mint more than 1000 per second.
func MintMessageID(t time.Time) string {
	suffix := msgIDSeq.Add(1) % 1000
	return fmt.Sprintf("%s%03d", t.Format(compactSecondsLayout), suffix)
}

// ClassificationCode derives the multiplicity code from the job shape.
func ClassificationCode(numBatches, numTransactions int) string {
	switch {
	case numBatches == 1 && numTransactions == 1:
		return ClassSDSC
	case numBatches == 1:
		return ClassSDMC
	case numTransactions == numBatches:
		return ClassMSDSC
	default:
		return ClassMDMC
	}
}

// FileName builds the output name for one generated copy:
// {TYPE}_{CLASS}_{timestamp-with-millis}_F{copy}.xml. The millisecond
// timestamp plus the copy index keeps names unique within a job.
func FileName(typeCode, class string, t time.Time, copyIndex int) string {
	return fmt.Sprintf("%s_%s_%s%03d_F%d.xml",
		typeCode, class, t.Format(compactSecondsLayout), t.Nanosecond()/1e6, copyIndex)
}

// ArchiveName builds the downloadable zip's filename.
func ArchiveName(typeCode, class string, t time.Time) string {
	return fmt.Sprintf("%s_%s_%s.zip", typeCode, class, t.Format(compactSecondsLayout))
}

var generatedNameRe = regexp.MustCompile(`^(PAIN|PACS|CAMT)\d+V\d+_[A-Z]{4,5}_\d{17}_F\d+\.xml$`)

// IsGeneratedName reports whether name matches the generated-file naming
// scheme. Used to tell freshly generated files from foreign uploads.
func IsGeneratedName(name string) bool {
	return generatedNameRe.MatchString(name)
}
