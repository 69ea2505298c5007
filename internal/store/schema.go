package store

// SchemaVersion is the zsh-histdb schema generation written to user_version.
const SchemaVersion = 2

// Mirrors zsh-histdb. The ON CONFLICT IGNORE clauses make the dimension
// tables insert-if-absent; importers read these exact column names.
const schema = `
CREATE TABLE IF NOT EXISTS commands (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  argv TEXT,
  UNIQUE(argv) ON CONFLICT IGNORE
);

CREATE TABLE IF NOT EXISTS places (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  host TEXT,
  dir TEXT,
  UNIQUE(host, dir) ON CONFLICT IGNORE
);

CREATE TABLE IF NOT EXISTS history (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  session INT,
  command_id INT REFERENCES commands (id),
  place_id INT REFERENCES places (id),
  exit_status INT,
  start_time INT,
  duration INT
);

PRAGMA user_version = 2;
`
