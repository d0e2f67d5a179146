package testutil

// recordData holds one fixture row.
type recordData struct {
	id    string
	name  string
	city  *string
	score int
	note  *string
}

func defaultRecord(id string) recordData {
	return recordData{id: id, name: id}
}

// RecordOption configures a record during builder setup.
type RecordOption func(*recordData)

func Name(name string) RecordOption {
	return func(r *recordData) { r.name = name }
}

func City(city string) RecordOption {
	return func(r *recordData) { r.city = &city }
}

func Score(score int) RecordOption {
	return func(r *recordData) { r.score = score }
}

// Note sets the nullable note column; without it the column is NULL.
func Note(note string) RecordOption {
	return func(r *recordData) { r.note = &note }
}
