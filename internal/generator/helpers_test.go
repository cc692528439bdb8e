// internal/generator/helpers_test.go
package generator

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"xmlgen-service/internal/common/logger"
)

// ==========================
// Test Templates
// ==========================

const painTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<Document xmlns="urn:iso:std:iso:20022:tech:xsd:pain.001.001.03">
    <CstmrCdtTrfInitn>
        <GrpHdr>
            <MsgId>TEMPLATE-MSG</MsgId>
            <CreDtTm>2024-01-01T00:00:00</CreDtTm>
            <NbOfTxs>2</NbOfTxs>
            <CtrlSum>300.00</CtrlSum>
        </GrpHdr>
        <PmtInf>
            <PmtInfId>TEMPLATE-BATCH-1</PmtInfId>
            <NbOfTxs>1</NbOfTxs>
            <CtrlSum>100.50</CtrlSum>
            <ReqdExctnDt>2024-01-02</ReqdExctnDt>
            <CdtTrfTxInf>
                <PmtId>
                    <InstrId>TEMPLATE-INSTR-1</InstrId>
                    <EndToEndId>TEMPLATE-E2E-1</EndToEndId>
                </PmtId>
                <Amt>
                    <InstdAmt Ccy="EUR">100.50</InstdAmt>
                </Amt>
            </CdtTrfTxInf>
        </PmtInf>
        <PmtInf>
            <PmtInfId>TEMPLATE-BATCH-2</PmtInfId>
            <CdtTrfTxInf>
                <PmtId>
                    <EndToEndId>TEMPLATE-E2E-2</EndToEndId>
                </PmtId>
                <Amt>
                    <InstdAmt Ccy="EUR">199.50</InstdAmt>
                </Amt>
            </CdtTrfTxInf>
        </PmtInf>
    </CstmrCdtTrfInitn>
</Document>`

const pacsTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<Document xmlns="urn:iso:std:iso:20022:tech:xsd:pacs.008.001.02">
    <FIToFICstmrCdtTrf>
        <GrpHdr>
            <MsgId>TEMPLATE-MSG</MsgId>
            <CreDtTm>2024-01-01T00:00:00</CreDtTm>
            <NbOfTxs>1</NbOfTxs>
            <CtrlSum>42.42</CtrlSum>
        </GrpHdr>
        <CdtTrfTxInf>
            <PmtId>
                <InstrId>TEMPLATE-INSTR</InstrId>
                <EndToEndId>TEMPLATE-E2E</EndToEndId>
                <TxId>TEMPLATE-TX</TxId>
            </PmtId>
            <IntrBkSttlmAmt Ccy="EUR">42.42</IntrBkSttlmAmt>
        </CdtTrfTxInf>
    </FIToFICstmrCdtTrf>
</Document>`

const unknownTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<Document xmlns="urn:example:totally:custom">
    <SomethingElse>
        <GrpHdr>
            <MsgId>TEMPLATE-MSG</MsgId>
            <CreDtTm>2024-01-01T00:00:00</CreDtTm>
        </GrpHdr>
        <PmtInf>
            <PmtInfId>B-1</PmtInfId>
            <CdtTrfTxInf>
                <PmtId>
                    <EndToEndId>E2E</EndToEndId>
                </PmtId>
                <Amt>
                    <InstdAmt Ccy="EUR">10.00</InstdAmt>
                </Amt>
            </CdtTrfTxInf>
        </PmtInf>
    </SomethingElse>
</Document>`

const noBatchTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<Document xmlns="urn:iso:std:iso:20022:tech:xsd:pain.001.001.03">
    <CstmrCdtTrfInitn>
        <GrpHdr>
            <MsgId>TEMPLATE-MSG</MsgId>
            <CreDtTm>2024-01-01T00:00:00</CreDtTm>
        </GrpHdr>
    </CstmrCdtTrfInitn>
</Document>`

// ==========================
// Test Helper Functions
// ==========================

func mustLoad(t *testing.T, template string) *etree.Document {
	t.Helper()
	doc, err := LoadTemplate([]byte(template))
	require.NoError(t, err)
	return doc
}

func createReplicator(t *testing.T, profile SchemaProfile) *replicator {
	t.Helper()
	return newReplicator(profile, logger.NewTestLogger(t))
}

func textOf(t *testing.T, scope *etree.Element, tag string) string {
	t.Helper()
	el := findFirst(scope, tag)
	require.NotNil(t, el, "element %s not found under %s", tag, scope.Tag)
	return el.Text()
}

func decimalOf(t *testing.T, scope *etree.Element, tag string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(textOf(t, scope, tag))
	require.NoError(t, err)
	return d
}
