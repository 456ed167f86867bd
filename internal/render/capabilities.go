package render

// Capabilities describes the SQL features supported by a dialect.
type Capabilities struct {
	FinalModifier       bool // FROM table FINAL
	SampleClause        bool // SAMPLE k
	PrewhereClause      bool // PREWHERE conditions
	LimitBy             bool // LIMIT n BY fields
	Mutations           bool // ALTER TABLE ... UPDATE/DELETE
	Upsert              bool // ON CONFLICT / ON DUPLICATE KEY
	Returning           bool // RETURNING clause
	CaseInsensitiveLike bool // ILIKE operator
	RowLocking          bool // FOR UPDATE/SHARE support
	SetOperations       bool // UNION / INTERSECT / EXCEPT
}
