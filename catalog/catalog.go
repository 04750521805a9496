/*
Package catalog maintains a SQLite index of BMP files and the properties
reported for them by bmpfile.
*/
package catalog

import (
	"database/sql"
	"fmt"

	"github.com/bodgit/bmpfile"
	_ "github.com/mattn/go-sqlite3"
)

// Entry is a single indexed file.
type Entry struct {
	ID         int64
	Path       string
	SHA1       string
	Properties bmpfile.ImageProperties
	BufferSize int
}

// Catalog is the database of indexed files.
type Catalog struct {
	db *sql.DB
}

// New opens or creates the catalog stored in file.
func New(file string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS image (id INTEGER PRIMARY KEY NOT NULL, path TEXT NOT NULL UNIQUE, sha1 TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, pixel_format INTEGER NOT NULL, orientation INTEGER NOT NULL, line_padding INTEGER NOT NULL, buffer_size INTEGER NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE INDEX IF NOT EXISTS image_sha1 ON image (sha1)"); err != nil {
		db.Close()
		return nil, err
	}

	return &Catalog{
		db: db,
	}, nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Add stores the properties of the file at path, replacing any previous
// entry for the same path, and returns the id of the entry.
func (c *Catalog) Add(path, sha1 string, p bmpfile.ImageProperties) (int64, error) {
	size := bmpfile.ComputeBufferSize(p)

	var id int64
	switch err := c.db.QueryRow("SELECT id FROM image WHERE path = ?", path).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := c.db.Exec("INSERT INTO image (path, sha1, width, height, pixel_format, orientation, line_padding, buffer_size) VALUES (?, ?, ?, ?, ?, ?, ?, ?)", path, sha1, p.Width, p.Height, int(p.PixelFormat), int(p.Orientation), p.LinePadding, size)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		if _, err := c.db.Exec("UPDATE image SET sha1 = ?, width = ?, height = ?, pixel_format = ?, orientation = ?, line_padding = ?, buffer_size = ? WHERE id = ?", sha1, p.Width, p.Height, int(p.PixelFormat), int(p.Orientation), p.LinePadding, size, id); err != nil {
			return 0, err
		}
		return id, nil
	default:
		return 0, err
	}
}

const selectEntry = "SELECT id, path, sha1, width, height, pixel_format, orientation, line_padding, buffer_size FROM image"

type scanner interface {
	Scan(...interface{}) error
}

func scanEntry(s scanner) (*Entry, error) {
	var e Entry
	var format, orientation int
	if err := s.Scan(&e.ID, &e.Path, &e.SHA1, &e.Properties.Width, &e.Properties.Height, &format, &orientation, &e.Properties.LinePadding, &e.BufferSize); err != nil {
		return nil, err
	}
	e.Properties.PixelFormat = bmpfile.PixelFormat(format)
	e.Properties.Orientation = bmpfile.Orientation(orientation)
	return &e, nil
}

// Find returns the entry for path, or nil if there is none.
func (c *Catalog) Find(path string) (*Entry, error) {
	e, err := scanEntry(c.db.QueryRow(selectEntry+" WHERE path = ?", path))
	switch err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return e, nil
	default:
		return nil, err
	}
}

// FindBySHA1 returns every entry whose file content hashes to sha1.
func (c *Catalog) FindBySHA1(sha1 string) ([]Entry, error) {
	return c.query(selectEntry+" WHERE sha1 = ? ORDER BY path", sha1)
}

// List returns every entry ordered by path.
func (c *Catalog) List() ([]Entry, error) {
	return c.query(selectEntry + " ORDER BY path")
}

// Length returns the number of entries.
func (c *Catalog) Length() (int, error) {
	var n int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM image").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (c *Catalog) query(q string, args ...interface{}) ([]Entry, error) {
	rows, err := c.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}
