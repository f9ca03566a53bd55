// Package migrations embeds the counter-store schema into the binary.
//
// Importing this package for its side effect registers the files with the
// database package, so Migrate works without SQL files on the device.
package migrations

import (
	"embed"

	"github.com/nerrad567/gray-logic-device/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "."
}
