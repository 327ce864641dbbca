package popn

import (
	"crypto/sha1"
	"database/sql"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register lossless chart formats
	_ "image/png"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/popn/chart"
	"github.com/bodgit/popn/notes"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

var errDecode = errors.New("cannot decode image")

// Chart is a detected chart as stored in the catalogue
type Chart struct {
	UUID   string         `json:"uuid"`
	SHA1   string         `json:"sha1"`
	Name   string         `json:"name"`
	Width  int            `json:"width"`
	Height int            `json:"height"`
	Notes  notes.Sequence `json:"notes"`
}

// ChartDB is a sqlite catalogue of detected charts keyed by the SHA-1 of
// the source image
type ChartDB struct {
	db *sql.DB
}

// NewChartDB opens, creating if necessary, the catalogue in file
func NewChartDB(file string) (*ChartDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS chart (id INTEGER PRIMARY KEY NOT NULL, uuid TEXT NOT NULL UNIQUE, sha1 TEXT NOT NULL UNIQUE, name TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, notes BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &ChartDB{
		db: db,
	}, nil
}

// Close closes the underlying database
func (db *ChartDB) Close() error {
	return db.db.Close()
}

// AddChart detects the notes in the chart image file and stores them. If
// the same image has been added before the stored chart is returned without
// scanning it again.
func (db *ChartDB) AddChart(file string, c chart.Config) (*Chart, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return db.addChart(strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)), f, c)
}

func (db *ChartDB) addChart(name string, r io.Reader, c chart.Config) (*Chart, error) {
	h := sha1.New()
	tee := io.TeeReader(r, h)
	m, _, err := image.Decode(tee)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errDecode, err)
	}

	// Hash anything the decoder left unread
	if _, err := io.Copy(ioutil.Discard, tee); err != nil {
		return nil, err
	}
	sha := fmt.Sprintf("%X", h.Sum(nil))

	existing, err := db.FindChartBySHA1(sha)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	masks, err := chart.DetectImage(m, c)
	if err != nil {
		return nil, err
	}

	ch := &Chart{
		UUID:   uuid.New().String(),
		SHA1:   sha,
		Name:   name,
		Width:  m.Bounds().Dx(),
		Height: m.Bounds().Dy(),
		Notes:  notes.Sequence(masks),
	}

	b, err := ch.Notes.MarshalBinary()
	if err != nil {
		return nil, err
	}

	// Another worker may have stored the same image in the meantime
	if _, err := db.db.Exec("INSERT OR IGNORE INTO chart (uuid, sha1, name, width, height, notes) VALUES (?, ?, ?, ?, ?, ?)", ch.UUID, ch.SHA1, ch.Name, ch.Width, ch.Height, b); err != nil {
		return nil, err
	}

	return db.FindChartBySHA1(sha)
}

func scanChart(row interface{ Scan(...interface{}) error }) (*Chart, error) {
	var ch Chart
	var b []byte
	if err := row.Scan(&ch.UUID, &ch.SHA1, &ch.Name, &ch.Width, &ch.Height, &b); err != nil {
		return nil, err
	}
	if err := ch.Notes.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return &ch, nil
}

// FindChartBySHA1 returns the chart whose source image has the given
// uppercase hex SHA-1, or nil if there is none
func (db *ChartDB) FindChartBySHA1(sha string) (*Chart, error) {
	ch, err := scanChart(db.db.QueryRow("SELECT uuid, sha1, name, width, height, notes FROM chart WHERE sha1 = ?", strings.ToUpper(sha)))
	switch err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return ch, nil
	default:
		return nil, err
	}
}

// Charts returns every chart in the order they were added
func (db *ChartDB) Charts() ([]Chart, error) {
	rows, err := db.db.Query("SELECT uuid, sha1, name, width, height, notes FROM chart ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var charts []Chart
	for rows.Next() {
		ch, err := scanChart(rows)
		if err != nil {
			return nil, err
		}
		charts = append(charts, *ch)
	}
	return charts, rows.Err()
}
