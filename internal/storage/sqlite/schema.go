package sqlite

// schema is the complete relational layout. All statements are idempotent
// so Open can run them against both fresh and existing ledger files.
const schema = `
CREATE TABLE IF NOT EXISTS meta (
	id           INTEGER PRIMARY KEY CHECK (id = 1),
	company_name TEXT NOT NULL DEFAULT '',
	fy_end_month INTEGER NOT NULL DEFAULT 12,
	fy_end_day   INTEGER NOT NULL DEFAULT 31,
	lock_date    TEXT NOT NULL DEFAULT ''
);

INSERT OR IGNORE INTO meta (id) VALUES (1);

CREATE TABLE IF NOT EXISTS accounts (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT NOT NULL UNIQUE COLLATE NOCASE,
	description TEXT NOT NULL DEFAULT '',
	number      TEXT NOT NULL DEFAULT '',
	kind        TEXT NOT NULL CHECK (kind IN ('posting', 'total')),
	normal      TEXT NOT NULL CHECK (normal IN ('D', 'C')),
	parent_id   INTEGER REFERENCES accounts(id)
);

CREATE TABLE IF NOT EXISTS transactions (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	date        TEXT NOT NULL,
	reference   TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
CREATE INDEX IF NOT EXISTS idx_transactions_reference ON transactions(reference);

CREATE TABLE IF NOT EXISTS journal_lines (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	transaction_id INTEGER NOT NULL REFERENCES transactions(id) ON DELETE CASCADE,
	account_id     INTEGER NOT NULL REFERENCES accounts(id),
	amount         INTEGER NOT NULL,
	description    TEXT NOT NULL DEFAULT '',
	tax_code       TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_journal_lines_txn ON journal_lines(transaction_id);
CREATE INDEX IF NOT EXISTS idx_journal_lines_account ON journal_lines(account_id);

CREATE TABLE IF NOT EXISTS import_rules (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	keyword      TEXT NOT NULL,
	account_name TEXT NOT NULL REFERENCES accounts(name),
	tax_code     TEXT NOT NULL DEFAULT '',
	priority     INTEGER NOT NULL DEFAULT 0,
	notes        TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS tax_codes (
	code              TEXT PRIMARY KEY,
	description       TEXT NOT NULL DEFAULT '',
	rate_percent      TEXT NOT NULL,
	collected_account TEXT NOT NULL DEFAULT '',
	paid_account      TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS reports (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT NOT NULL UNIQUE COLLATE NOCASE,
	description TEXT NOT NULL DEFAULT '',
	sort_order  INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS report_lines (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	report_id  INTEGER NOT NULL REFERENCES reports(id) ON DELETE CASCADE,
	position   INTEGER NOT NULL,
	kind       TEXT NOT NULL CHECK (kind IN ('account', 'label', 'separator')),
	label      TEXT NOT NULL DEFAULT '',
	account_id INTEGER REFERENCES accounts(id),
	indent     INTEGER NOT NULL DEFAULT 0,
	sep_style  TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_report_lines_report ON report_lines(report_id);
`

func (s *Store) initSchema() error {
	_, err := s.db.Exec(schema)
	return err
}
