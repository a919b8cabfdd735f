package sqlite

// Snapshot DDL. The snapshot is derived output of a reindex and is replaced
// wholesale; nothing here is a source of truth.
const (
	createMeta = `CREATE TABLE IF NOT EXISTS meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`

	createDetails = `CREATE TABLE IF NOT EXISTS details (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    title TEXT,
    description TEXT
);`

	createItems = `CREATE TABLE IF NOT EXISTS items (
    position INTEGER PRIMARY KEY,
    item_id TEXT NOT NULL UNIQUE,
    kind TEXT,
    size TEXT,
    remaining TEXT,
    hours_spent INTEGER NOT NULL,
    title TEXT,
    description TEXT,
    priority INTEGER NOT NULL,
    owner TEXT,
    duedate TEXT,
    status TEXT NOT NULL,
    created_at TEXT NOT NULL,
    created_by TEXT NOT NULL
);`

	createItemLog = `CREATE TABLE IF NOT EXISTS item_log (
    item_id TEXT NOT NULL,
    seq INTEGER NOT NULL,
    entry_id TEXT NOT NULL,
    spent TEXT,
    hours INTEGER NOT NULL,
    remaining TEXT,
    message TEXT NOT NULL,
    created_at TEXT NOT NULL,
    created_by TEXT NOT NULL,
    PRIMARY KEY (item_id, seq),
    FOREIGN KEY (item_id) REFERENCES items(item_id) ON DELETE CASCADE
);`
)

// schemaStatements lists the DDL in creation order.
var schemaStatements = []string{
	createMeta,
	createDetails,
	createItems,
	createItemLog,
}

// snapshotTables lists the tables cleared before a snapshot is rewritten,
// children first.
var snapshotTables = []string{"item_log", "items", "details", "meta"}

// Meta keys recording which log state the snapshot was built from.
const (
	metaEntryCount  = "entry_count"
	metaLastEntryID = "last_entry_id"
)
