package postgres

import (
	"dispatch/internal/adapters/out/postgres/adminrepo"
	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/customerrepo"
	"dispatch/internal/adapters/out/postgres/locationrepo"
	"dispatch/internal/adapters/out/postgres/taskrepo"
	"dispatch/internal/adapters/out/postgres/walletrepo"

	"gorm.io/gorm"
)

// Tables lists every table in truncation-safe order.
var Tables = []string{
	"wallet_transactions",
	"wallets",
	"tasks",
	"location_reports",
	"courier_devices",
	"couriers",
	"customers",
	"admins",
}

// Migrate creates or alters all tables and indexes.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&courierrepo.CourierDTO{},
		&courierrepo.DeviceDTO{},
		&customerrepo.CustomerDTO{},
		&adminrepo.AdminDTO{},
		&taskrepo.TaskDTO{},
		&walletrepo.WalletDTO{},
		&walletrepo.TransactionDTO{},
		&locationrepo.ReportDTO{},
	)
}
