package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/apex/log"
)

// columns are the store columns backing the canonical header, in the exact
// persisted field order (Data/Hora .. Tipo Imóvel).
var columns = []string{
	"data_hora",
	"nome",
	"telefone",
	"imovel_referencia",
	"interesse_visita",
	"resumo_conversa",
	"origem",
	"lead_id",
	"status",
	"tipo_imovel",
}

// EnsurePartition creates the named partition table with the canonical
// 10-column layout if it does not exist yet.
func EnsurePartition(ctx context.Context, db *sql.DB, name string) error {
	log.Infof("Provisioning lead partition %s...", name)

	createSQL := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s(
		seq INT NOT NULL AUTO_INCREMENT,
		data_hora VARCHAR(32) NOT NULL,
		nome VARCHAR(255) NOT NULL,
		telefone VARCHAR(64) NOT NULL,
		imovel_referencia VARCHAR(255) NOT NULL,
		interesse_visita VARCHAR(32) NOT NULL,
		resumo_conversa TEXT,
		origem VARCHAR(64) NOT NULL,
		lead_id VARCHAR(64) NOT NULL,
		status VARCHAR(32) NOT NULL,
		tipo_imovel VARCHAR(32) NOT NULL,
		PRIMARY KEY (seq),
		UNIQUE INDEX lead_id_index (lead_id),
		INDEX tipo_imovel_index (tipo_imovel)
	)`, name)

	if _, err := db.ExecContext(ctx, createSQL); err != nil {
		return fmt.Errorf("failed to create partition %s: %w", name, err)
	}
	log.Infof("Partition %s created/verified", name)
	return nil
}

// partitionExists checks information_schema for the named table. Absence
// is a normal result, not an error.
func partitionExists(ctx context.Context, db *sql.DB, name string) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM information_schema.TABLES
		WHERE TABLE_SCHEMA = DATABASE()
		AND TABLE_NAME = ?
	`, name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check partition %s: %w", name, err)
	}
	return count > 0, nil
}
