// Package query turns blog list parameters into MongoDB filters or aggregation
// pipelines and does the page arithmetic for the list envelope.
package query

import (
	"regexp"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/umanari145/blog-backend/internal/models"
)

// PageSize is the fixed number of posts per page.
const PageSize = 10

// CountField names the single field produced by the count pipeline.
const CountField = "total_items_count"

// Params are the raw list query parameters. Empty means absent.
type Params struct {
	Category   string `form:"category"`
	Tag        string `form:"tag"`
	Year       string `form:"year"`
	Month      string `form:"month"`
	SearchWord string `form:"search_word"`
	PageNo     string `form:"page_no"`
}

// Taxonomy binds a post array field to the label type it references.
type Taxonomy struct {
	Field string
	Type  models.LabelType
}

var (
	CategoryTaxonomy = Taxonomy{Field: "categories", Type: models.LabelTypeCategory}
	TagTaxonomy      = Taxonomy{Field: "tags", Type: models.LabelTypeTag}
)

// Criteria is the resolved intent of a query, independent of its bson form.
// Either Taxonomy is set (label join), or Field/Pattern describe a regex filter,
// or nothing is set (match all).
type Criteria struct {
	Taxonomy *Taxonomy
	Keyword  string

	Field   string
	Pattern string
}

// Descriptor is the planner output.
type Descriptor struct {
	Criteria    Criteria
	Filter      bson.D
	Pipeline    mongo.Pipeline
	CurrentPage int
	Offset      int64
}

// Plan resolves params into a descriptor. Precedence: category, tag,
// year+month, search word, everything. It never fails.
func Plan(p Params) *Descriptor {
	page := ParsePage(p.PageNo)
	d := &Descriptor{
		Filter:      bson.D{},
		CurrentPage: page,
		Offset:      Offset(page),
	}

	switch {
	case p.Category != "":
		d.Criteria = Criteria{Taxonomy: &CategoryTaxonomy, Keyword: p.Category}
	case p.Tag != "":
		d.Criteria = Criteria{Taxonomy: &TagTaxonomy, Keyword: p.Tag}
	case p.Year != "" && p.Month != "":
		d.Criteria = Criteria{
			Field:   "post_date",
			Pattern: "^" + regexp.QuoteMeta(p.Year) + "-" + regexp.QuoteMeta(p.Month),
		}
	case p.SearchWord != "":
		d.Criteria = Criteria{Field: "contents", Pattern: regexp.QuoteMeta(p.SearchWord)}
	}

	if d.Criteria.Taxonomy != nil {
		d.Pipeline = taxonomyStages(*d.Criteria.Taxonomy, d.Criteria.Keyword)
	} else if d.Criteria.Field != "" {
		d.Filter = bson.D{{Key: d.Criteria.Field, Value: primitive.Regex{Pattern: d.Criteria.Pattern, Options: "s"}}}
	}
	return d
}

// UsesPipeline reports whether the descriptor must be run as an aggregation.
func (d *Descriptor) UsesPipeline() bool {
	return d.Pipeline != nil
}

// PagePipeline is the join pipeline followed by sort, skip and limit.
func (d *Descriptor) PagePipeline() mongo.Pipeline {
	out := make(mongo.Pipeline, 0, len(d.Pipeline)+3)
	out = append(out, d.Pipeline...)
	out = append(out,
		bson.D{{Key: "$sort", Value: bson.D{{Key: "post_date", Value: -1}}}},
		bson.D{{Key: "$skip", Value: d.Offset}},
		bson.D{{Key: "$limit", Value: int64(PageSize)}},
	)
	return out
}

// CountPipeline is the join pipeline with a $count stage and no paging.
func (d *Descriptor) CountPipeline() mongo.Pipeline {
	out := make(mongo.Pipeline, 0, len(d.Pipeline)+1)
	out = append(out, d.Pipeline...)
	out = append(out, bson.D{{Key: "$count", Value: CountField}})
	return out
}

// FindOptions returns the sort/skip/limit options for filter mode.
func (d *Descriptor) FindOptions() *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "post_date", Value: -1}}).
		SetSkip(d.Offset).
		SetLimit(PageSize)
}

func taxonomyStages(t Taxonomy, keyword string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "labels"},
			{Key: "localField", Value: t.Field},
			{Key: "foreignField", Value: "no"},
			{Key: "as", Value: "details"},
		}}},
		{{Key: "$match", Value: bson.D{
			{Key: "details", Value: bson.D{
				{Key: "$elemMatch", Value: bson.D{
					{Key: "name", Value: keyword},
					{Key: "type", Value: string(t.Type)},
				}},
			}},
		}}},
	}
}

// ParsePage reads a 1-based page number; absent or malformed input is page 1
// and anything below 1 is clamped to 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Offset returns the number of posts to skip for a page.
func Offset(page int) int64 {
	if page < 1 {
		page = 1
	}
	return int64(page-1) * PageSize
}

// TotalPages is ceil(count / PageSize).
func TotalPages(count int64) int64 {
	if count <= 0 {
		return 0
	}
	return (count + PageSize - 1) / PageSize
}
