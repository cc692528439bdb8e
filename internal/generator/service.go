// internal/generator/service.go
package generator

import (
	"context"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/beevik/etree"

	"xmlgen-service/internal/common/config"
	xmlerrors "xmlgen-service/internal/common/errors"
	"xmlgen-service/internal/common/logger"
	"xmlgen-service/internal/common/metrics"
)

// Date fields refreshed on every copy. Creation time is required by all
// supported families; the requested execution date is schema-optional.
const (
	creationTimeTag  = "CreDtTm"
	executionDateTag = "ReqdExctnDt"
)

// Service orchestrates generation jobs: validate, parse once, classify
// once, then fan the requested copies out across a bounded worker pool.
type Service struct {
	cfg config.GeneratorConfig
	log logger.Logger
}

func NewService(cfg config.GeneratorConfig, log logger.Logger) *Service {
	return &Service{cfg: cfg, log: log}
}

// Generate runs one job to completion. The returned Result accounts for
// every requested copy, either under Files or under Failures. A nil error
// with a non-empty Failures slice is a partial success.
func (s *Service) Generate(ctx context.Context, job Job) (*Result, error) {
	if err := job.Validate(Limits{MaxCopies: s.cfg.MaxCopies, MaxTransactions: s.cfg.MaxTransactions}); err != nil {
		metrics.GenerationJobsTotal.WithLabelValues(TypeUnknown, "rejected").Inc()
		return nil, err
	}

	doc, err := LoadTemplate(job.Template)
	if err != nil {
		metrics.GenerationJobsTotal.WithLabelValues(TypeUnknown, "rejected").Inc()
		return nil, err
	}

	profile, class := Classify(doc)
	if !class.Recognized {
		warn := xmlerrors.NewUnknownMessageTypeError(class.Code)
		s.log.Warn("proceeding with default profile", map[string]interface{}{
			"code":  class.Code,
			"error": warn.Error(),
		})
	}

	// The template is shared by every copy, so a missing batch element is a
	// structural defect of the whole job. Detect it before fan-out.
	if findFirst(doc.Root(), profile.BatchTag) == nil {
		err := xmlerrors.NewMissingBatchTemplateError(profile.BatchTag)
		metrics.GenerationJobsTotal.WithLabelValues(profile.TypeCode, "failed").Inc()
		return nil, err
	}

	metrics.JobsActive.Inc()
	defer metrics.JobsActive.Dec()

	classCode := ClassificationCode(job.NumBatches, job.NumTransactions)

	s.log.Info("starting generation job", map[string]interface{}{
		"type":           profile.TypeCode,
		"classification": classCode,
		"transactions":   job.NumTransactions,
		"batches":        job.NumBatches,
		"copies":         job.NumCopies,
	})

	result := &Result{
		TypeCode:       profile.TypeCode,
		Recognized:     class.Recognized,
		Classification: classCode,
	}

	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > job.NumCopies {
		workers = job.NumCopies
	}

	type outcome struct {
		file GeneratedFile
		err  error
		idx  int
	}

	tasks := make(chan int)
	outcomes := make(chan outcome, job.NumCopies)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := range tasks {
				file, err := s.generateCopy(doc, profile, classCode, job, k)
				outcomes <- outcome{file: file, err: err, idx: k}
			}
		}()
	}

	for k := 1; k <= job.NumCopies; k++ {
		tasks <- k
	}
	close(tasks)
	wg.Wait()
	close(outcomes)

	for o := range outcomes {
		if o.err != nil {
			metrics.CopiesFailed.WithLabelValues(profile.TypeCode).Inc()
			result.Failures = append(result.Failures, CopyError{CopyIndex: o.idx, Err: o.err})
			continue
		}
		result.Files = append(result.Files, o.file)
	}

	sort.Slice(result.Files, func(i, j int) bool {
		return result.Files[i].CopyIndex < result.Files[j].CopyIndex
	})
	sort.Slice(result.Failures, func(i, j int) bool {
		return result.Failures[i].CopyIndex < result.Failures[j].CopyIndex
	})

	switch {
	case len(result.Failures) == 0:
		metrics.GenerationJobsTotal.WithLabelValues(profile.TypeCode, "success").Inc()
	case len(result.Files) > 0:
		metrics.GenerationJobsTotal.WithLabelValues(profile.TypeCode, "partial").Inc()
	default:
		metrics.GenerationJobsTotal.WithLabelValues(profile.TypeCode, "failed").Inc()
	}

	s.log.Info("generation job finished", map[string]interface{}{
		"type":      profile.TypeCode,
		"generated": len(result.Files),
		"failed":    len(result.Failures),
	})
	return result, nil
}

// generateCopy produces one independent copy: deep-clone the parsed
// template, replicate, refresh dates, serialize, name. copyIndex is
// 1-based.
func (s *Service) generateCopy(doc *etree.Document, profile SchemaProfile, classCode string, job Job, copyIndex int) (GeneratedFile, error) {
	start := time.Now()
	defer func() {
		metrics.CopyDuration.WithLabelValues(profile.TypeCode).Observe(time.Since(start).Seconds())
	}()

	clone := doc.Copy()
	now := time.Now()
	msgID := MintMessageID(now)

	rep := newReplicator(profile, s.log)
	if err := rep.Replicate(clone, msgID, job.NumTransactions, job.NumBatches); err != nil {
		return GeneratedFile{}, xmlerrors.NewCopyFailedError(copyIndex-1, err)
	}

	set := fieldSetter{log: s.log}
	set.setRequired(clone.Root(), creationTimeTag, now.Format(isoDateTimeLayout))
	set.setOptional(clone.Root(), executionDateTag, now.Format(isoDateLayout))

	data, err := Serialize(clone)
	if err != nil {
		return GeneratedFile{}, xmlerrors.NewCopyFailedError(copyIndex-1, err)
	}

	return GeneratedFile{
		CopyIndex: copyIndex,
		Name:      FileName(profile.TypeCode, classCode, time.Now(), copyIndex),
		Data:      data,
	}, nil
}
