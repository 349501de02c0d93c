package domain

import "time"

// Meme is an archived quote, looked up by keyword or by the person's name.
type Meme struct {
	ID        int64     `db:"id" json:"id"`
	Keyword   string    `db:"keyword" json:"keyword"`
	Name      *string   `db:"name" json:"name"`
	Content   string    `db:"content" json:"content"`
	CreatedBy string    `db:"created_by" json:"created_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// MemeEdit carries optional replacements. A non-nil empty Name clears the name.
type MemeEdit struct {
	Content *string
	Keyword *string
	Name    *string
}

func (e MemeEdit) Empty() bool {
	return (e.Content == nil || *e.Content == "") &&
		(e.Keyword == nil || *e.Keyword == "") &&
		e.Name == nil
}
