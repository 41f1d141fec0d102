package sqliteutil

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"strings"

	devenv "osrs-info/dev/env"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// OpenDB opens a sqlite database at the given path (":memory:" works) and
// applies the schema. Remote libsql urls go through the libsql driver
// instead of the embedded one.
func OpenDB(schema, path string) (*sql.DB, error) {
	var db *sql.DB
	var err error

	if strings.Contains(path, "://") {
		db, err = sql.Open("libsql", path)
	} else {
		db, err = openFile(path)
	}
	if err != nil {
		return nil, err
	}

	if schema != "" {
		_, err = db.Exec(schema)
		if err != nil && !strings.Contains(err.Error(), "already exists") {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}

func openFile(path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("a path was not specified")
	}
	if path != ":memory:" {
		resolved, err := devenv.ResolvePath(path)
		if err != nil {
			return nil, err
		}
		path = resolved

		_, statErr := os.Stat(path)
		if os.IsNotExist(statErr) {
			f, err := os.Create(path)
			if err != nil {
				return nil, err
			}
			f.Close()
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// see this stackoverflow post for information on why the following
	// lines exist: https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
	db.SetMaxOpenConns(1)
	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// Config is the json5 shape for pointing a command at a database, either
// a local file or a remote libsql url with an auth token.
type Config struct {
	File      string `json:"file"`
	Url       string `json:"url"`
	AuthToken string `json:"auth_token"`
}

func (config Config) OpenDB(schema string) (*sql.DB, error) {
	if config.Url == "" {
		return OpenDB(schema, config.File)
	}

	values := url.Values{}
	if config.AuthToken != "" {
		values.Add("authToken", config.AuthToken)
	}
	target := config.Url
	if len(values) > 0 {
		target = config.Url + "?" + values.Encode()
	}
	return OpenDB(schema, target)
}
