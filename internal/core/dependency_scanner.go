package core

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/stream"

	"system-packages/internal/ports"
	"system-packages/internal/types"
)

// ExclusionPolicy is the exclusion filter as seen by the scanners.
type ExclusionPolicy interface {
	PackageFilter
	ArtifactExcluded(group string, artifact string) (string, bool)
}

// DependencyScanner filters the dependency set and scans every remaining
// archive into a ScanContext.
type DependencyScanner struct {
	Archives ports.ArchivePort
	Filter   ExclusionPolicy
	Workers  int
}

func NewDependencyScanner(archives ports.ArchivePort, filter ExclusionPolicy, workers int) DependencyScanner {
	return DependencyScanner{
		Archives: archives,
		Filter:   filter,
		Workers:  workers,
	}
}

// ScanArtifacts scans archives on up to Workers goroutines. Every write to
// scanCtx happens in a stream callback, and callbacks run one at a time in
// input order, so the outcome matches a sequential scan.
func (d DependencyScanner) ScanArtifacts(ctx context.Context, artifacts []types.ArtifactRef, scanCtx *ScanContext) error {
	if d.Archives == nil || d.Filter == nil || scanCtx == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("dependency scanner requires archive port, exclusion filter and scan context")
	}
	workers := d.Workers
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	scanner := NewArchiveScanner(d.Filter)
	s := stream.New().WithMaxGoroutines(workers)
	var scanErr error
	for _, artifact := range artifacts {
		if pattern, excluded := d.Filter.ArtifactExcluded(artifact.Group, artifact.Artifact); excluded {
			log.Ctx(ctx).Debug().Str("artifact", artifact.Coordinate()).Str("pattern", pattern).Msg("artifact excluded")
			s.Go(func() stream.Callback {
				return func() { scanCtx.RecordExcludedArtifact(artifact, pattern) }
			})
			continue
		}
		if !artifact.Scope.RuntimeRelevant() {
			log.Ctx(ctx).Debug().Str("artifact", artifact.Coordinate()).Str("scope", string(artifact.Scope)).Msg("artifact skipped for scope")
			s.Go(func() stream.Callback {
				return func() { scanCtx.RecordSkippedArtifact(artifact, types.SkipReasonScope) }
			})
			continue
		}
		if artifact.Type != types.ArtifactTypeJar {
			log.Ctx(ctx).Warn().Str("artifact", artifact.Coordinate()).Str("type", artifact.Type).Msg("artifact is not a jar; skipping")
			s.Go(func() stream.Callback {
				return func() { scanCtx.RecordSkippedArtifact(artifact, types.SkipReasonType) }
			})
			continue
		}
		s.Go(func() stream.Callback {
			if ctx.Err() != nil {
				return func() {}
			}
			events, err := d.scanArchive(ctx, scanner, artifact)
			return func() {
				if scanErr != nil {
					return
				}
				if err != nil {
					scanErr = err
					cancel()
					return
				}
				scanCtx.RecordScannedArtifact(artifact)
				events.replay(scanCtx, artifact.Path)
			}
		})
	}
	s.Wait()
	if scanErr != nil {
		return scanErr
	}
	if err := ctx.Err(); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("dependency scan canceled").
			WithCause(err)
	}
	log.Ctx(ctx).Debug().Int("packages", len(scanCtx.packages)).Msg("dependency scan completed")
	return nil
}

func (d DependencyScanner) scanArchive(ctx context.Context, scanner ArchiveScanner, artifact types.ArtifactRef) (*archiveEvents, error) {
	log.Ctx(ctx).Debug().Str("artifact", artifact.Coordinate()).Str("path", artifact.Path).Msg("scanning archive")
	archive, err := d.Archives.Open(artifact.Path)
	if err != nil {
		return nil, wrapArchiveError(err, artifact)
	}
	defer archive.Close()

	events := &archiveEvents{}
	if err := scanner.Scan(ctx, archive, artifact.Version, artifact.Coordinate(), events); err != nil {
		return nil, wrapArchiveError(err, artifact)
	}
	return events, nil
}

func wrapArchiveError(err error, artifact types.ArtifactRef) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeOf(err)).
		WithMsg(fmt.Sprintf("failed to scan artifact %s (%s)", artifact.Coordinate(), artifact.Path)).
		WithCause(err)
}

// archiveEvents records one archive's callbacks for later replay.
type archiveEvents struct {
	events []archiveEvent
}

type archiveEvent struct {
	pkg      DiscoveredPackage
	excluded bool
	pattern  string
}

func (e *archiveEvents) OnPackage(pkg DiscoveredPackage) {
	e.events = append(e.events, archiveEvent{pkg: pkg})
}

func (e *archiveEvents) OnPackageExcluded(name string, pattern string, coordinate string) {
	e.events = append(e.events, archiveEvent{
		pkg:      DiscoveredPackage{Name: name, Coordinate: coordinate},
		excluded: true,
		pattern:  pattern,
	})
}

func (e *archiveEvents) replay(scanCtx *ScanContext, location string) {
	for _, event := range e.events {
		if event.excluded {
			scanCtx.MarkPackageExcluded(event.pkg.Name, event.pattern, event.pkg.Coordinate)
			continue
		}
		pkg := event.pkg
		scanCtx.TrackPackage(pkg.Name, pkg.Version, pkg.Coordinate, pkg.Method, pkg.ParentPackage)
		scanCtx.UpdateVersionLocationCounts(location, pkg.Version, pkg.SpecVersion, pkg.Name)
	}
}
