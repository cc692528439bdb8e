// internal/generator/service_test.go
package generator

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xmlgen-service/internal/common/config"
	xmlerrors "xmlgen-service/internal/common/errors"
	"xmlgen-service/internal/common/logger"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestService(t *testing.T) *Service {
	cfg := config.GeneratorConfig{
		Workers:         4,
		MaxCopies:       50,
		MaxTransactions: 10000,
	}
	return NewService(cfg, logger.NewTestLogger(t))
}

func createJob(template string, transactions, batches, copies int) Job {
	return Job{
		Template:        []byte(template),
		NumTransactions: transactions,
		NumBatches:      batches,
		NumCopies:       copies,
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestService_Generate_Success(t *testing.T) {
	svc := createTestService(t)

	result, err := svc.Generate(context.Background(), createJob(painTemplate, 5, 2, 3))
	require.NoError(t, err)

	assert.Equal(t, "PAIN1V3", result.TypeCode)
	assert.True(t, result.Recognized)
	assert.Equal(t, ClassMDMC, result.Classification)
	assert.Empty(t, result.Failures)
	require.Len(t, result.Files, 3)

	for i, file := range result.Files {
		assert.Equal(t, i+1, file.CopyIndex)
		assert.True(t, IsGeneratedName(file.Name), "bad filename %s", file.Name)
		assert.Contains(t, file.Name, fmt.Sprintf("_F%d.xml", i+1))

		doc := mustLoad(t, string(file.Data))
		batches := findAll(doc.Root(), "PmtInf")
		require.Len(t, batches, 2)
		total := 0
		for _, b := range batches {
			total += len(findAll(b, "CdtTrfTxInf"))
		}
		assert.Equal(t, 5, total)
	}
}

func TestService_Generate_CopiesAreIndependent(t *testing.T) {
	svc := createTestService(t)

	result, err := svc.Generate(context.Background(), createJob(painTemplate, 3, 1, 10))
	require.NoError(t, err)
	require.Len(t, result.Files, 10)

	// Every copy carries its own freshly minted message id; all ids are
	// pairwise distinct and seed that copy's batch/transaction ids.
	seen := map[string]bool{}
	for _, file := range result.Files {
		doc := mustLoad(t, string(file.Data))
		msgID := textOf(t, findFirst(doc.Root(), "GrpHdr"), "MsgId")
		assert.False(t, seen[msgID], "message id %s reused across copies", msgID)
		seen[msgID] = true

		batch := findFirst(doc.Root(), "PmtInf")
		assert.Equal(t, msgID+"B1", textOf(t, batch, "PmtInfId"))
	}
}

func TestService_Generate_RefreshesDates(t *testing.T) {
	svc := createTestService(t)

	result, err := svc.Generate(context.Background(), createJob(painTemplate, 1, 1, 1))
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	doc := mustLoad(t, string(result.Files[0].Data))
	assert.NotEqual(t, "2024-01-01T00:00:00", textOf(t, doc.Root(), "CreDtTm"))
	assert.NotEqual(t, "2024-01-02", textOf(t, doc.Root(), "ReqdExctnDt"))
}

func TestService_Generate_UnknownTypeStillProduces(t *testing.T) {
	svc := createTestService(t)

	result, err := svc.Generate(context.Background(), createJob(unknownTemplate, 4, 2, 3))
	require.NoError(t, err)

	assert.False(t, result.Recognized)
	assert.Equal(t, TypeUnknown, result.TypeCode)
	assert.Empty(t, result.Failures)
	require.Len(t, result.Files, 3)

	for _, file := range result.Files {
		doc := mustLoad(t, string(file.Data))
		assert.Len(t, findAll(doc.Root(), "PmtInf"), 2)
	}
}

// ==========================
// Failure Tests
// ==========================

func TestService_Generate_MissingBatchFailsWholeJob(t *testing.T) {
	svc := createTestService(t)

	result, err := svc.Generate(context.Background(), createJob(noBatchTemplate, 5, 2, 4))
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, xmlerrors.ErrMissingBatchTemplate))
}

func TestService_Generate_UnparsableTemplate(t *testing.T) {
	svc := createTestService(t)

	_, err := svc.Generate(context.Background(), createJob("<Document><broken", 1, 1, 1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, xmlerrors.ErrTemplateParseFailed))
}

func TestService_Generate_ParameterValidation(t *testing.T) {
	svc := createTestService(t)

	tests := []struct {
		name string
		job  Job
	}{
		{name: "empty template", job: createJob("", 1, 1, 1)},
		{name: "zero transactions", job: createJob(painTemplate, 0, 1, 1)},
		{name: "negative batches", job: createJob(painTemplate, 5, -1, 1)},
		{name: "zero copies", job: createJob(painTemplate, 5, 1, 0)},
		{name: "more batches than transactions", job: createJob(painTemplate, 3, 5, 1)},
		{name: "copies over limit", job: createJob(painTemplate, 5, 1, 51)},
		{name: "transactions over limit", job: createJob(painTemplate, 10001, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Generate(context.Background(), tt.job)
			require.Error(t, err)
			assert.True(t, errors.Is(err, xmlerrors.ErrInvalidParameter))
			assert.True(t, xmlerrors.IsFatal(err))
		})
	}
}

// ==========================
// Concurrency Tests
// ==========================

func TestService_Generate_SingleWorkerMatchesParallel(t *testing.T) {
	serial := NewService(config.GeneratorConfig{Workers: 1, MaxCopies: 50, MaxTransactions: 10000}, logger.NewNoOpLogger())
	parallel := NewService(config.GeneratorConfig{Workers: 8, MaxCopies: 50, MaxTransactions: 10000}, logger.NewNoOpLogger())

	for _, svc := range []*Service{serial, parallel} {
		result, err := svc.Generate(context.Background(), createJob(painTemplate, 12, 4, 8))
		require.NoError(t, err)
		require.Len(t, result.Files, 8)
		for i, file := range result.Files {
			assert.Equal(t, i+1, file.CopyIndex, "results must be ordered by copy index")
		}
	}
}
