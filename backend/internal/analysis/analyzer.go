package analysis

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ghostcheck/backend/internal/archive"
	"ghostcheck/backend/internal/classify"
	"ghostcheck/backend/internal/compare"
	"ghostcheck/backend/internal/extract"
	"ghostcheck/backend/internal/jsonvalue"
	apperrors "ghostcheck/backend/pkg/errors"
)

// DefaultWorkers bounds concurrent per-file extraction when unset
const DefaultWorkers = 4

// Options configures an Analyzer
type Options struct {
	Workers       int   // Files processed concurrently
	MaxEntryBytes int64 // Entries above this size are skipped; <= 0 disables
}

// Analyzer turns archives into reports. It is stateless between runs.
type Analyzer struct {
	extractor     *extract.Extractor
	workers       int
	maxEntryBytes int64
	logger        *zap.Logger
}

// NewAnalyzer creates an analyzer
func NewAnalyzer(extractor *extract.Extractor, opts Options, logger *zap.Logger) *Analyzer {
	if extractor == nil {
		extractor = extract.Default()
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		extractor:     extractor,
		workers:       opts.Workers,
		maxEntryBytes: opts.MaxEntryBytes,
		logger:        logger,
	}
}

// Document is one JSON file handed to the pipeline, already read into memory
type Document struct {
	Path string
	Data []byte
}

// fileOutcome is the result slot owned by exactly one task
type fileOutcome struct {
	name        string
	collection  extract.NamedCollection
	failed      bool
	diagnostics []Diagnostic
}

// Analyze reads every JSON entry of arc and builds a report
func (a *Analyzer) Analyze(ctx context.Context, arc *archive.Archive) (*Report, error) {
	entries := arc.JSONEntries()
	a.logger.Info("Analyzing archive",
		zap.String("source", arc.Source),
		zap.Int("entries", len(arc.Entries())),
		zap.Int("json_entries", len(entries)),
		zap.Int("hidden", arc.HiddenCount()),
	)

	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Name
	}

	return a.run(ctx, arc.Source, paths, func(i int) ([]byte, error) {
		return entries[i].ReadAll(a.maxEntryBytes)
	})
}

// AnalyzeDocuments runs the pipeline over documents that are already in memory.
// Paths not ending in .json are ignored.
func (a *Analyzer) AnalyzeDocuments(ctx context.Context, source string, docs []Document) (*Report, error) {
	var kept []Document
	for _, d := range docs {
		if strings.EqualFold(path.Ext(d.Path), ".json") {
			kept = append(kept, d)
		}
	}

	paths := make([]string, len(kept))
	for i, d := range kept {
		paths[i] = d.Path
	}

	return a.run(ctx, source, paths, func(i int) ([]byte, error) {
		return kept[i].Data, nil
	})
}

func (a *Analyzer) run(ctx context.Context, source string, paths []string, read func(i int) ([]byte, error)) (*Report, error) {
	if len(paths) == 0 {
		a.logger.Warn("No JSON files found", zap.String("source", source))
		return nil, &BatchError{
			Err:         apperrors.ErrNoJSONFiles,
			Diagnostics: []Diagnostic{{Level: LevelError, Message: apperrors.ErrNoJSONFiles.Message}},
		}
	}

	names := CollectionNames(paths)
	outcomes := make([]fileOutcome, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)

	for i := range paths {
		idx := i
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			outcomes[idx] = a.processFile(names[idx], paths[idx], func() ([]byte, error) {
				return read(idx)
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analysis interrupted: %w", err)
	}

	return a.assemble(source, paths, outcomes)
}

// processFile never fails: read and parse problems become diagnostics
func (a *Analyzer) processFile(name, filePath string, read func() ([]byte, error)) fileOutcome {
	out := fileOutcome{name: name}
	log := a.logger.With(zap.String("file", filePath))

	data, err := read()
	if err != nil {
		log.Warn("Failed to read entry", zap.Error(err))
		out.failed = true
		out.diagnostics = append(out.diagnostics, Diagnostic{File: filePath, Level: LevelError, Message: err.Error()})
		return out
	}

	doc, err := jsonvalue.Parse(data)
	if err != nil {
		parseErr := apperrors.NewJSONParseFailed(filePath, err)
		log.Warn("Failed to parse JSON", zap.Error(parseErr))
		out.failed = true
		out.diagnostics = append(out.diagnostics, Diagnostic{File: filePath, Level: LevelError, Message: parseErr.Error()})
		return out
	}

	out.collection = a.extractor.Collect(name, doc)
	log.Debug("Extracted records", zap.String("collection", name), zap.Int("records", out.collection.Len()))

	if out.collection.Len() == 0 {
		out.diagnostics = append(out.diagnostics, Diagnostic{File: filePath, Level: LevelInfo, Message: "no user records found"})
	} else {
		out.diagnostics = append(out.diagnostics, Diagnostic{
			File:    filePath,
			Level:   LevelInfo,
			Message: fmt.Sprintf("extracted %d records as %q", out.collection.Len(), name),
		})
	}
	return out
}

// assemble runs after every task has finished; outcomes are read-only here
func (a *Analyzer) assemble(source string, paths []string, outcomes []fileOutcome) (*Report, error) {
	report := &Report{
		ID:          uuid.New().String(),
		Source:      source,
		CreatedAt:   time.Now().UTC(),
		Files:       make([]FileSummary, len(outcomes)),
		Collections: []extract.NamedCollection{},
	}

	byName := make(map[string]extract.NamedCollection, len(outcomes))
	var withData []string

	for i, out := range outcomes {
		report.Files[i] = FileSummary{
			Name:    out.name,
			Path:    paths[i],
			Role:    classify.RoleOf(out.name),
			Records: out.collection.Len(),
			Failed:  out.failed,
		}
		report.Diagnostics = append(report.Diagnostics, out.diagnostics...)

		if out.collection.Len() > 0 {
			byName[out.name] = out.collection
			withData = append(withData, out.name)
		}
	}

	if len(withData) == 0 {
		a.logger.Warn("No user data extracted", zap.String("source", source), zap.Int("files", len(paths)))
		diags := append(report.Diagnostics, Diagnostic{Level: LevelError, Message: apperrors.ErrNoDataExtracted.Message})
		return nil, &BatchError{Err: apperrors.ErrNoDataExtracted, Diagnostics: diags}
	}

	for _, name := range classify.Order(withData) {
		report.Collections = append(report.Collections, byName[name])
	}

	report.Comparison = buildComparison(report.Collections)
	report.Diagnostics = append(report.Diagnostics, summaryDiagnostic(report))

	a.logger.Info("Analysis complete",
		zap.String("report_id", report.ID),
		zap.Int("collections", len(report.Collections)),
		zap.Int("records", report.TotalRecords()),
		zap.String("comparison", string(report.Comparison.Status)),
	)
	return report, nil
}

// roleListPattern matches the relationship lists themselves: "followers",
// "following" and their numbered shards. Files such as following_hashtags
// carry the role marker but list something else.
var roleListPattern = regexp.MustCompile(`(?i)^(followers|following)(_\d+)?( \(\d+\))?$`)

// buildComparison merges the shards of each role list and compares following
// against followers. Exports split large lists across numbered files.
func buildComparison(collections []extract.NamedCollection) Comparison {
	var following, followers []extract.NamedCollection
	for _, c := range collections {
		if !roleListPattern.MatchString(c.Name) {
			continue
		}
		switch classify.RoleOf(c.Name) {
		case classify.RoleFollowing:
			following = append(following, c)
		case classify.RoleFollowers:
			followers = append(followers, c)
		}
	}

	cmp := Comparison{
		Following: collectionNames(following),
		Followers: collectionNames(followers),
	}

	if len(following) == 0 || len(followers) == 0 {
		cmp.Status = StatusInsufficientData
		cmp.Guidance = insufficientGuidance(len(following) == 0, len(followers) == 0)
		return cmp
	}

	rel := compare.Analyze(
		merge(string(classify.RoleFollowing), following),
		merge(string(classify.RoleFollowers), followers),
	)
	cmp.Status = StatusReady
	cmp.Relationships = &rel
	return cmp
}

func merge(name string, parts []extract.NamedCollection) extract.NamedCollection {
	var all []extract.UserRecord
	for _, p := range parts {
		all = append(all, p.Records...)
	}
	return extract.NamedCollection{Name: name, Records: extract.Dedupe(all)}
}

func collectionNames(cs []extract.NamedCollection) []string {
	names := make([]string, 0, len(cs))
	for _, c := range cs {
		names = append(names, c.Name)
	}
	return names
}

func insufficientGuidance(missingFollowing, missingFollowers bool) string {
	var missing string
	switch {
	case missingFollowing && missingFollowers:
		missing = "neither a followers nor a following list"
	case missingFollowing:
		missing = "no following list"
	default:
		missing = "no followers list"
	}
	return "The archive contains " + missing + ". Request a new export that includes " +
		"\"Followers and following\" in JSON format, then upload the whole zip file."
}

func summaryDiagnostic(r *Report) Diagnostic {
	msg := fmt.Sprintf("%d collections, %d records", len(r.Collections), r.TotalRecords())
	if r.Comparison.Ready() {
		rel := r.Comparison.Relationships
		msg += fmt.Sprintf("; %d ghosts, %d fans, %d mutuals", rel.Ghosts.Len(), rel.Fans.Len(), rel.Mutuals.Len())
	} else {
		msg += "; relationship comparison unavailable"
	}
	return Diagnostic{Level: LevelInfo, Message: msg}
}
