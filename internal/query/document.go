package query

import "docvault/internal/model"

// documentColumns is the projection shared by the list and single-row queries.
// The favorite flag is derived from the favorites relation for the owning user.
const documentColumns = `d.id, d.user_id, d.name, d.file_name, d.file_path, d.file_size, d.file_type,
	d.category_id, d.category_name, c.color AS category_color, d.description,
	(f.document_id IS NOT NULL) AS favorite, d.created_at, d.updated_at`

const documentFrom = `documents d
	LEFT JOIN categories c ON d.category_id = c.id
	LEFT JOIN favorites f ON f.document_id = d.id AND f.user_id = d.user_id`

// BuildDocumentQuery compiles filter criteria into a parameterized listing
// query plus its ordered bind values.
//
// The owner predicate is always the first condition and the first bind value.
// Optional conditions follow in a fixed order regardless of which are present:
// category, free-text search, date bucket. Rows are ordered by creation
// timestamp descending with id descending as the tie-break.
func BuildDocumentQuery(criteria model.FilterCriteria) (string, []any) {
	b := NewBuilder(documentColumns, documentFrom).
		WhereEquals("d.user_id", criteria.OwnerID)

	if criteria.HasCategory() {
		b.WhereEquals("d.category_name", criteria.Category)
	}
	if criteria.SearchText != "" {
		b.WhereSearch(criteria.SearchText, "d.name", "d.description")
	}
	if clause := dateBucketClause(criteria.DateBucket); clause != "" {
		b.WhereRaw(clause)
	}

	return b.OrderBy("d.created_at DESC, d.id DESC").Build()
}

// BuildDocumentByIDQuery builds the single-row variant of the listing query,
// scoped to the same owner-first parameter contract.
func BuildDocumentByIDQuery(ownerID, id int64) (string, []any) {
	return NewBuilder(documentColumns, documentFrom).
		WhereEquals("d.user_id", ownerID).
		WhereEquals("d.id", id).
		Build()
}

// dateBucketClause maps a bucket to its constant SQL fragment. The comparison
// is anchored on the database's current date, so the builder itself stays a
// pure function of its input. Unknown buckets produce no constraint.
func dateBucketClause(bucket model.DateBucket) string {
	switch bucket {
	case model.DateBucketToday:
		return "d.created_at::date = CURRENT_DATE"
	case model.DateBucketWeek:
		return "d.created_at >= CURRENT_DATE - INTERVAL '7 days'"
	case model.DateBucketMonth:
		return "d.created_at >= CURRENT_DATE - INTERVAL '30 days'"
	case model.DateBucketYear:
		return "d.created_at >= CURRENT_DATE - INTERVAL '1 year'"
	default:
		return ""
	}
}
