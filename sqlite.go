package tilegen

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const (
	sqlUpsertTile = `INSERT INTO tiles (name, data) VALUES (:name, :data) ON CONFLICT (name) DO UPDATE SET data=EXCLUDED.data;`
	sqlListPrefix = `SELECT name FROM tiles WHERE substr(name, 1, length(:prefix)) = :prefix ORDER BY name;`
)

// NewSQLiteSink creates a sink backed by a new database with a random name in
// the os tempdir.
func NewSQLiteSink() (*SQLiteSink, error) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	fname := filepath.Join(os.TempDir(), fmt.Sprintf("tiles.%d.sqlite", rng.Intn(1000000)))
	return OpenSQLiteSink(fname)
}

// OpenSQLiteSink given it's filename (database file) on disk.
// Will create if it doesn't exist.
func OpenSQLiteSink(fname string) (*SQLiteSink, error) {
	db, err := sqlx.Open("sqlite3", fname)
	if err != nil {
		return nil, err
	}

	s := &SQLiteSink{db: db, filename: fname}
	return s, s.init()
}

// SQLiteSink stores PNG encoded tiles as rows of a database, so a whole tile
// library can be shipped (or served) as one file.
type SQLiteSink struct {
	filename string
	db       *sqlx.DB
}

// Filename returns the path to the database on disk
func (s *SQLiteSink) Filename() string {
	return s.filename
}

// Close the underlying database
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}

// List returns the stored set tiles of `label`
func (s *SQLiteSink) List(label string) ([]string, error) {
	names, err := s.query(sqlListPrefix, map[string]interface{}{"prefix": Label(label) + "_"})
	if err != nil {
		return nil, err
	}

	result := []string{}
	for _, name := range names {
		if IsSetArtifact(label, name) {
			result = append(result, name)
		}
	}
	return result, nil
}

// Names returns the name of every stored tile
func (s *SQLiteSink) Names() ([]string, error) {
	return s.query(`SELECT name FROM tiles ORDER BY name;`, map[string]interface{}{})
}

// Delete a tile by name
func (s *SQLiteSink) Delete(name string) error {
	_, err := s.db.NamedExec(`DELETE FROM tiles WHERE name=:name;`, map[string]interface{}{"name": name})
	return err
}

// Write stores `img` under `name`, replacing any tile of that name.
// The returned location is <database file>#<name>
func (s *SQLiteSink) Write(name string, img image.Image) (string, error) {
	data, err := encodePNG(img)
	if err != nil {
		return "", err
	}

	_, err = s.db.NamedExec(sqlUpsertTile, dbTile{Name: name, Data: data})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s#%s", s.filename, name), nil
}

// Image reads back & decodes the tile of the given name
func (s *SQLiteSink) Image(name string) (image.Image, error) {
	rows, err := s.db.NamedQuery(
		`SELECT name, data FROM tiles WHERE name=:name LIMIT 1;`,
		map[string]interface{}{"name": name},
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tile := dbTile{}
	found := false
	for rows.Next() { // there's at most one due to LIMIT 1
		err = rows.StructScan(&tile)
		if err != nil {
			return nil, err
		}
		found = true
	}
	if !found {
		return nil, fmt.Errorf("no tile named %s", name)
	}

	return png.Decode(bytes.NewReader(tile.Data))
}

// query runs a named query returning a single column of names
func (s *SQLiteSink) query(q string, args map[string]interface{}) ([]string, error) {
	rows, err := s.db.NamedQuery(q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		err = rows.Scan(&name)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// init creates our table if it doesn't exist
func (s *SQLiteSink) init() error {
	createTiles := `CREATE TABLE IF NOT EXISTS tiles(
		name TEXT PRIMARY KEY,
		data BLOB NOT NULL
	    );`
	_, err := s.db.Exec(createTiles)
	return err
}

// dbTile is one stored tile
type dbTile struct {
	Name string `db:"name"`
	Data []byte `db:"data"`
}
