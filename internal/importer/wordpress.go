// Package importer copies published WordPress posts and their terms into the
// blog document store.
package importer

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/umanari145/blog-backend/internal/models"
	"github.com/umanari145/blog-backend/internal/observability"
	"github.com/umanari145/blog-backend/internal/repositories"
)

// DefaultBatchSize is the number of posts written per insert
const DefaultBatchSize = 100

// PostNoPrefix is prepended to the WordPress post ID to form post_no
const PostNoPrefix = "post-"

const (
	postsQuery = `SELECT ID, post_title, post_content, post_date
		FROM wp_posts WHERE post_status = 'publish' ORDER BY ID`

	termsQuery = `SELECT t.term_id, LOWER(t.name), tt.taxonomy
		FROM wp_terms t JOIN wp_term_taxonomy tt ON t.term_id = tt.term_id
		ORDER BY t.term_id`

	relationshipsQuery = `SELECT tr.object_id, tt.term_id, tt.taxonomy
		FROM wp_term_relationships tr JOIN wp_term_taxonomy tt ON tr.term_taxonomy_id = tt.term_taxonomy_id
		ORDER BY tr.object_id, tt.term_id`
)

// requiredTables must exist in the source database
var requiredTables = []string{"wp_posts", "wp_terms", "wp_term_taxonomy", "wp_term_relationships"}

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	"2006-01-02",
}

// Options control an import run
type Options struct {
	BatchSize  int
	DryRun     bool
	SkipLabels bool
}

// Result contains the results of an import run
type Result struct {
	PostsRead      int
	PostsImported  int
	LabelsImported int
	Batches        int
	Warnings       []string
}

// Importer reads a WordPress database and writes posts and labels
type Importer struct {
	db     *sql.DB
	posts  repositories.PostRepository
	labels repositories.LabelRepository
	logger *logrus.Logger
	opts   Options
}

// New creates an importer reading from db and writing to repos
func New(db *sql.DB, repos repositories.RepositoryManager, logger *logrus.Logger, opts Options) *Importer {
	if logger == nil {
		logger = logrus.New()
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	return &Importer{
		db:     db,
		posts:  repos.Posts(),
		labels: repos.Labels(),
		logger: logger,
		opts:   opts,
	}
}

type relationship struct {
	objectID int64
	termID   int
	taxonomy models.LabelType
}

// CheckSource verifies the WordPress tables are readable
func (im *Importer) CheckSource(ctx context.Context) error {
	for _, table := range requiredTables {
		rows, err := im.db.QueryContext(ctx, "SELECT 1 FROM "+table+" LIMIT 1")
		if err != nil {
			return fmt.Errorf("table %s is not readable: %w", table, err)
		}
		rows.Close()
	}
	return nil
}

// Run imports labels, then posts in batches
func (im *Importer) Run(ctx context.Context) (*Result, error) {
	im.logger.WithFields(logrus.Fields{
		"batch_size": im.opts.BatchSize,
		"dry_run":    im.opts.DryRun,
	}).Info("Starting WordPress import...")

	result := &Result{Warnings: make([]string, 0)}

	if !im.opts.SkipLabels {
		n, err := im.importLabels(ctx, result)
		if err != nil {
			return result, fmt.Errorf("label import failed: %w", err)
		}
		result.LabelsImported = n
	}

	rels, err := im.loadRelationships(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to load term relationships: %w", err)
	}

	posts, err := im.loadPosts(ctx, rels, result)
	if err != nil {
		return result, fmt.Errorf("failed to load posts: %w", err)
	}
	result.PostsRead = len(posts)

	for _, batch := range lo.Chunk(posts, im.opts.BatchSize) {
		if !im.opts.DryRun {
			if err := im.posts.InsertMany(ctx, batch); err != nil {
				return result, fmt.Errorf("failed to insert batch %d: %w", result.Batches+1, err)
			}
			observability.ImportedDocuments.WithLabelValues("posts").Add(float64(len(batch)))
		}
		result.Batches++
		result.PostsImported += len(batch)

		im.logger.WithFields(logrus.Fields{
			"batch": result.Batches,
			"size":  len(batch),
		}).Debug("Post batch written")
	}

	im.logger.WithFields(logrus.Fields{
		"posts":   result.PostsImported,
		"labels":  result.LabelsImported,
		"batches": result.Batches,
		"dry_run": im.opts.DryRun,
	}).Info("WordPress import completed successfully")

	return result, nil
}

func (im *Importer) importLabels(ctx context.Context, result *Result) (int, error) {
	rows, err := im.db.QueryContext(ctx, termsQuery)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var labels []*models.Label
	for rows.Next() {
		var (
			l        models.Label
			taxonomy string
		)
		if err := rows.Scan(&l.No, &l.Name, &taxonomy); err != nil {
			return 0, err
		}
		l.Type = models.LabelType(taxonomy)
		if !l.Type.IsValid() {
			continue
		}
		labels = append(labels, &l)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	if len(labels) == 0 {
		result.Warnings = append(result.Warnings, "no category or tag terms found")
		return 0, nil
	}
	if !im.opts.DryRun {
		if err := im.labels.InsertMany(ctx, labels); err != nil {
			return 0, err
		}
		observability.ImportedDocuments.WithLabelValues("labels").Add(float64(len(labels)))
	}
	return len(labels), nil
}

func (im *Importer) loadRelationships(ctx context.Context) (map[int64][]relationship, error) {
	rows, err := im.db.QueryContext(ctx, relationshipsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rels []relationship
	for rows.Next() {
		var (
			r        relationship
			taxonomy string
		)
		if err := rows.Scan(&r.objectID, &r.termID, &taxonomy); err != nil {
			return nil, err
		}
		r.taxonomy = models.LabelType(taxonomy)
		rels = append(rels, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lo.GroupBy(rels, func(r relationship) int64 { return r.objectID }), nil
}

func (im *Importer) loadPosts(ctx context.Context, rels map[int64][]relationship, result *Result) ([]*models.Post, error) {
	rows, err := im.db.QueryContext(ctx, postsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		var (
			id       int64
			title    string
			content  string
			postDate string
		)
		if err := rows.Scan(&id, &title, &content, &postDate); err != nil {
			return nil, err
		}

		date, err := parseDate(postDate)
		if err != nil {
			im.logger.WithError(err).WithField("wp_id", id).Warn("Invalid post date, importing without one")
			result.Warnings = append(result.Warnings, fmt.Sprintf("post %d: %v", id, err))
		}

		posts = append(posts, &models.Post{
			PostNo:     PostNoPrefix + strconv.FormatInt(id, 10),
			Title:      title,
			Contents:   content,
			PostDate:   date,
			Categories: termIDs(rels[id], models.LabelTypeCategory),
			Tags:       termIDs(rels[id], models.LabelTypeTag),
		})
	}
	return posts, rows.Err()
}

func termIDs(rels []relationship, t models.LabelType) []int {
	return lo.FilterMap(rels, func(r relationship, _ int) (int, bool) {
		return r.termID, r.taxonomy == t
	})
}

// parseDate truncates a WordPress DATETIME to YYYY-MM-DD
func parseDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("unrecognised date %q", s)
}
