package main

import (
	"log"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "johnhenry:johnhenry@tcp(localhost:3306)/johnhenry?parseTime=true&multiStatements=true&loc=Local"
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get DB: %v", err)
	}

	sql := `
	CREATE TABLE IF NOT EXISTS orders (
	  id CHAR(36) NOT NULL,
	  order_number VARCHAR(32) NOT NULL,
	  user_id CHAR(36) NOT NULL,
	  status VARCHAR(16) NOT NULL,
	  payment_status VARCHAR(24) NOT NULL,
	  payment_method VARCHAR(24) NOT NULL DEFAULT '',
	  subtotal_vnd BIGINT NOT NULL,
	  shipping_fee_vnd BIGINT NOT NULL,
	  tax_vnd BIGINT NOT NULL,
	  discount_vnd BIGINT NOT NULL,
	  total_vnd BIGINT NOT NULL,
	  coupon_code VARCHAR(64) NULL,
	  shipping_method VARCHAR(24) NOT NULL,
	  shipping_address TEXT NOT NULL,
	  billing_address TEXT NOT NULL,
	  cart_item_ids JSON NULL,
	  seller_confirmed TINYINT(1) NOT NULL DEFAULT 0,
	  seller_confirmed_at DATETIME(3) NULL,
	  tracking_number VARCHAR(64) NULL,
	  paid_at DATETIME(3) NULL,
	  shipped_at DATETIME(3) NULL,
	  delivered_at DATETIME(3) NULL,
	  cancelled_at DATETIME(3) NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_orders_order_number (order_number),
	  KEY ix_orders_user_created (user_id, created_at),
	  KEY ix_orders_status (status)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS order_items (
	  id CHAR(36) NOT NULL,
	  order_id CHAR(36) NOT NULL,
	  product_id CHAR(36) NOT NULL,
	  product_name VARCHAR(255) NOT NULL,
	  sku VARCHAR(64) NOT NULL,
	  image_url VARCHAR(512) NOT NULL DEFAULT '',
	  quantity INT NOT NULL,
	  unit_price_vnd BIGINT NOT NULL,
	  line_total_vnd BIGINT NOT NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  KEY ix_order_items_order_id (order_id),
	  KEY ix_order_items_product_id (product_id),
	  CONSTRAINT fk_order_items_order FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS order_status_history (
	  id CHAR(36) NOT NULL,
	  order_id CHAR(36) NOT NULL,
	  from_status VARCHAR(16) NOT NULL,
	  to_status VARCHAR(16) NOT NULL,
	  actor_id CHAR(36) NOT NULL,
	  note VARCHAR(500) NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  KEY ix_order_status_history_order (order_id, created_at),
	  CONSTRAINT fk_order_status_history_order FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS payments (
	  id CHAR(36) NOT NULL,
	  order_id CHAR(36) NOT NULL,
	  method VARCHAR(24) NOT NULL,
	  status VARCHAR(16) NOT NULL,
	  amount_vnd BIGINT NOT NULL,
	  txn_id VARCHAR(128) NULL,
	  gateway_response JSON NULL,
	  processed_at DATETIME(3) NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  KEY ix_payments_order_id (order_id),
	  CONSTRAINT fk_payments_order FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS gateway_events (
	  id CHAR(36) NOT NULL,
	  gateway VARCHAR(24) NOT NULL,
	  event_id VARCHAR(191) NOT NULL,
	  payload_json JSON NOT NULL,
	  received_at DATETIME(3) NOT NULL,
	  processed_at DATETIME(3) NULL,
	  process_error VARCHAR(255) NULL,
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_gateway_events_gateway_event (gateway, event_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS payment_proofs (
	  id CHAR(36) NOT NULL,
	  order_id CHAR(36) NOT NULL,
	  file_key VARCHAR(255) NOT NULL,
	  file_url VARCHAR(512) NOT NULL,
	  uploaded DATETIME(3) NOT NULL,
	  PRIMARY KEY (id),
	  KEY ix_payment_proofs_order_id (order_id),
	  CONSTRAINT fk_payment_proofs_order FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS refund_requests (
	  id CHAR(36) NOT NULL,
	  order_id CHAR(36) NOT NULL,
	  amount_vnd BIGINT NOT NULL,
	  reason VARCHAR(500) NOT NULL,
	  status VARCHAR(16) NOT NULL,
	  requester_id CHAR(36) NOT NULL,
	  processor_id CHAR(36) NULL,
	  admin_note VARCHAR(500) NULL,
	  rejection_reason VARCHAR(500) NULL,
	  processed_at DATETIME(3) NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_refund_requests_order_id (order_id),
	  CONSTRAINT fk_refund_requests_order FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS coupons (
	  id CHAR(36) NOT NULL,
	  code VARCHAR(64) NOT NULL,
	  type VARCHAR(16) NOT NULL,
	  value BIGINT NOT NULL,
	  min_order_vnd BIGINT NOT NULL DEFAULT 0,
	  usage_limit INT NULL,
	  usage_count INT NOT NULL DEFAULT 0,
	  valid_from DATETIME(3) NULL,
	  valid_until DATETIME(3) NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_coupons_code (code)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS notifications (
	  id CHAR(36) NOT NULL,
	  user_id CHAR(36) NOT NULL,
	  title VARCHAR(255) NOT NULL,
	  body TEXT NOT NULL,
	  read_at DATETIME(3) NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  KEY ix_notifications_user_created (user_id, created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
	`

	if _, err := sqlDB.Exec(sql); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	log.Println("✓ order tables created successfully")
	log.Println("✓ payment tables created successfully")
	log.Println("✓ refund and coupon tables created successfully")
}
