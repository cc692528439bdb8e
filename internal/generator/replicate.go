// internal/generator/replicate.go
package generator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	xmlerrors "xmlgen-service/internal/common/errors"
	"xmlgen-service/internal/common/logger"
)

// Group-header tag names are stable across all supported families.
const (
	groupHeaderTag = "GrpHdr"
	docCountTag    = "NbOfTxs"
	docSumTag      = "CtrlSum"
	msgIDTag       = "MsgId"
)

// replicator expands one document clone to the requested batch/transaction
// shape. One instance per copy; never shared across goroutines.
type replicator struct {
	profile SchemaProfile
	log     logger.Logger
	set     fieldSetter
}

func newReplicator(profile SchemaProfile, log logger.Logger) *replicator {
	return &replicator{profile: profile, log: log, set: fieldSetter{log: log}}
}

// Replicate mutates doc in place: keeps the first batch subtree as the
// template, clones it to numBatches batches, distributes numTransactions
// across them, mints identifiers from msgID, and recomputes counts and
// control sums with exact decimal arithmetic.
func (r *replicator) Replicate(doc *etree.Document, msgID string, numTransactions, numBatches int) error {
	batches := findAll(doc.Root(), r.profile.BatchTag)
	if len(batches) == 0 {
		return xmlerrors.NewMissingBatchTemplateError(r.profile.BatchTag)
	}

	// Snapshot taken above: structural mutation below cannot invalidate it.
	template := batches[0]
	parent := template.Parent()
	for _, extra := range batches[1:] {
		extra.Parent().RemoveChild(extra)
	}

	// Clone from the pristine template before any batch is mutated.
	nodes := make([]*etree.Element, numBatches)
	nodes[0] = template
	for i := 1; i < numBatches; i++ {
		nodes[i] = template.Copy()
	}

	perBatch := numTransactions / numBatches
	remainder := numTransactions % numBatches

	totalCount := 0
	totalSum := decimal.Zero

	for i, batch := range nodes {
		count := perBatch
		if i < remainder {
			count++
		}

		batchID := fmt.Sprintf("%sB%d", msgID, i+1)
		if r.profile.BatchIDTag != "" {
			r.set.setRequired(batch, r.profile.BatchIDTag, batchID)
		}

		sum := r.fillBatch(batch, batchID, count)

		if r.profile.BatchAggregates {
			r.set.setOptional(batch, r.profile.BatchCountTag, strconv.Itoa(count))
			r.set.setOptional(batch, r.profile.BatchSumTag, sum.String())
		}

		totalCount += count
		totalSum = totalSum.Add(sum)
	}

	// Append clones only after the loop so the batch scan above never races
	// its own output.
	for _, batch := range nodes[1:] {
		parent.AddChild(batch)
	}

	r.updateGroupHeader(doc, msgID, totalCount, totalSum)
	return nil
}

// fillBatch expands one batch to count transactions and returns its exact
// amount sum. A batch whose template carries no transaction node is emitted
// empty with a diagnostic.
func (r *replicator) fillBatch(batch *etree.Element, batchID string, count int) decimal.Decimal {
	sum := decimal.Zero

	txs := findAll(batch, r.profile.TransactionTag)
	if len(txs) == 0 {
		warn := xmlerrors.NewMissingTransactionTemplateError(r.profile.TransactionTag)
		r.log.Warn("batch has no transaction template, emitting empty batch", map[string]interface{}{
			"batch_id": batchID,
			"error":    warn.Error(),
		})
		return sum
	}

	template := txs[0]
	txParent := template.Parent()
	for _, extra := range txs[1:] {
		extra.Parent().RemoveChild(extra)
	}

	nodes := make([]*etree.Element, count)
	nodes[0] = template
	for j := 1; j < count; j++ {
		nodes[j] = template.Copy()
	}

	for j, tx := range nodes {
		txID := fmt.Sprintf("%sT%d", batchID, j+1)
		for k, tag := range r.profile.TxIDTags {
			value := txID
			if k == 2 {
				value += "X"
			}
			if k == 0 {
				r.set.setRequired(tx, tag, value)
			} else {
				r.set.setOptional(tx, tag, value)
			}
		}

		amount, ok := r.transactionAmount(tx)
		if ok {
			sum = sum.Add(amount)
		}
	}

	for _, tx := range nodes[1:] {
		txParent.AddChild(tx)
	}
	return sum
}

// transactionAmount reads one transaction's amount as an exact decimal.
// A missing amount element is silent; an unparsable one is a warning and
// excludes the transaction from the sums.
func (r *replicator) transactionAmount(tx *etree.Element) (decimal.Decimal, bool) {
	el := findFirst(tx, r.profile.AmountTag)
	if el == nil && r.profile.AmountFallbackContainer != "" {
		if container := findFirst(tx, r.profile.AmountFallbackContainer); container != nil {
			el = findFirst(container, r.profile.AmountTag)
		}
	}
	if el == nil {
		return decimal.Zero, false
	}

	raw := strings.TrimSpace(el.Text())
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		warn := xmlerrors.NewMalformedAmountError(raw, err)
		r.log.Warn("skipping unparsable transaction amount", map[string]interface{}{
			"raw":   raw,
			"error": warn.Error(),
		})
		return decimal.Zero, false
	}
	return amount, true
}

// updateGroupHeader writes the minted message id and the document-level
// totals. Count and sum are schema-optional; the message id is required.
func (r *replicator) updateGroupHeader(doc *etree.Document, msgID string, totalCount int, totalSum decimal.Decimal) {
	header := findFirst(doc.Root(), groupHeaderTag)
	if header == nil {
		r.log.Warn("document has no group header, totals not written", map[string]interface{}{
			"type": r.profile.TypeCode,
		})
		return
	}
	r.set.setRequired(header, msgIDTag, msgID)
	r.set.setOptional(header, docCountTag, strconv.Itoa(totalCount))
	r.set.setOptional(header, docSumTag, totalSum.String())
}
