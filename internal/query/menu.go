package query

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// TaxonomyMenuPipeline counts posts per label of the given taxonomy, sorted by name.
func TaxonomyMenuPipeline(t Taxonomy) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$unwind", Value: "$" + t.Field}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "labels"},
			{Key: "localField", Value: t.Field},
			{Key: "foreignField", Value: "no"},
			{Key: "as", Value: "label"},
		}}},
		{{Key: "$unwind", Value: "$label"}},
		{{Key: "$match", Value: bson.D{{Key: "label.type", Value: string(t.Type)}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$label.no"},
			{Key: "name", Value: bson.D{{Key: "$first", Value: "$label.name"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "name", Value: 1},
			{Key: "count", Value: 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "name", Value: 1}}}},
	}
}

// MonthMenuPipeline counts posts per YYYY-MM prefix of post_date, ascending.
func MonthMenuPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$substrBytes", Value: bson.A{"$post_date", 0, 7}}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "name", Value: "$_id"},
			{Key: "count", Value: 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "name", Value: 1}}}},
	}
}
