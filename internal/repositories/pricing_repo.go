package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "courierdesk/internal/config"
	intdb "courierdesk/internal/db"
	"courierdesk/internal/domain"
	"courierdesk/internal/domain/models"
	"courierdesk/internal/utils"
)

// PricingRepo covers both rate cards. Corporate rows carry a client name;
// customer rows are the walk-in defaults the wizard prefills perKgRate from.
type PricingRepo struct {
	DB *sql.DB
}

func (r PricingRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r PricingRepo) EnsureTables() error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("db not available")
	}
	if !intdb.HasTable(db, "corporate_pricing") {
		ddl := `
CREATE TABLE IF NOT EXISTS corporate_pricing (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	client_name VARCHAR(255) NOT NULL,
	gst_number VARCHAR(20) NULL,
	from_state VARCHAR(100) NOT NULL,
	to_state VARCHAR(100) NOT NULL,
	mode VARCHAR(50) NOT NULL,
	per_kg_rate BIGINT NOT NULL,
	min_charge BIGINT NOT NULL DEFAULT 0,
	active TINYINT(1) NOT NULL DEFAULT 1,
	UNIQUE KEY uniq_corp_lane (client_name, from_state, to_state, mode)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
		if _, err := db.Exec(ddl); err != nil {
			return err
		}
	}
	if !intdb.HasTable(db, "customer_pricing") {
		ddl := `
CREATE TABLE IF NOT EXISTS customer_pricing (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	from_state VARCHAR(100) NOT NULL,
	to_state VARCHAR(100) NOT NULL,
	mode VARCHAR(50) NOT NULL,
	per_kg_rate BIGINT NOT NULL,
	min_charge BIGINT NOT NULL DEFAULT 0,
	active TINYINT(1) NOT NULL DEFAULT 1,
	UNIQUE KEY uniq_cust_lane (from_state, to_state, mode)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
		if _, err := db.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}

func (r PricingRepo) ListCorporate(q string) ([]models.CorporatePricing, error) {
	where := "1=1"
	args := []any{}
	if q = strings.TrimSpace(q); q != "" {
		where = "client_name LIKE ?"
		args = append(args, "%"+q+"%")
	}
	rows, err := r.db().Query(`
		SELECT id, client_name, COALESCE(gst_number,''), from_state, to_state, mode,
		       per_kg_rate, min_charge, active
		FROM corporate_pricing
		WHERE `+where+`
		ORDER BY client_name, from_state, to_state
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.CorporatePricing{}
	for rows.Next() {
		var p models.CorporatePricing
		var rate, min int64
		if err := rows.Scan(&p.ID, &p.ClientName, &p.GSTNumber, &p.FromState, &p.ToState,
			&p.Mode, &rate, &min, &p.Active); err != nil {
			return nil, err
		}
		p.PerKgRate = utils.Money(rate)
		p.MinCharge = utils.Money(min)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PricingRepo) CreateCorporate(p models.CorporatePricing) (models.CorporatePricing, error) {
	res, err := r.db().Exec(`
		INSERT INTO corporate_pricing (client_name, gst_number, from_state, to_state, mode, per_kg_rate, min_charge, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ClientName, intdb.NullIfEmpty(p.GSTNumber), p.FromState, p.ToState, p.Mode,
		int64(p.PerKgRate), int64(p.MinCharge), p.Active)
	if err != nil {
		if isDuplicate(err) {
			return p, domain.ConflictError{Resource: "corporate pricing", Msg: "lane already priced for this client"}
		}
		return p, err
	}
	id, _ := res.LastInsertId()
	p.ID = domain.ID(id)
	return p, nil
}

func (r PricingRepo) UpdateCorporate(id int64, p models.CorporatePricing) error {
	res, err := r.db().Exec(`
		UPDATE corporate_pricing
		SET client_name = ?, gst_number = ?, from_state = ?, to_state = ?, mode = ?,
		    per_kg_rate = ?, min_charge = ?, active = ?
		WHERE id = ?
	`, p.ClientName, intdb.NullIfEmpty(p.GSTNumber), p.FromState, p.ToState, p.Mode,
		int64(p.PerKgRate), int64(p.MinCharge), p.Active, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.NotFoundError{Resource: "corporate pricing"}
	}
	return nil
}

func (r PricingRepo) DeleteCorporate(id int64) error {
	return r.deleteFrom("corporate_pricing", "corporate pricing", id)
}

func (r PricingRepo) ListCustomer() ([]models.CustomerPricing, error) {
	rows, err := r.db().Query(`
		SELECT id, from_state, to_state, mode, per_kg_rate, min_charge, active
		FROM customer_pricing
		ORDER BY from_state, to_state, mode
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.CustomerPricing{}
	for rows.Next() {
		var p models.CustomerPricing
		var rate, min int64
		if err := rows.Scan(&p.ID, &p.FromState, &p.ToState, &p.Mode, &rate, &min, &p.Active); err != nil {
			return nil, err
		}
		p.PerKgRate = utils.Money(rate)
		p.MinCharge = utils.Money(min)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PricingRepo) CreateCustomer(p models.CustomerPricing) (models.CustomerPricing, error) {
	res, err := r.db().Exec(`
		INSERT INTO customer_pricing (from_state, to_state, mode, per_kg_rate, min_charge, active)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.FromState, p.ToState, p.Mode, int64(p.PerKgRate), int64(p.MinCharge), p.Active)
	if err != nil {
		if isDuplicate(err) {
			return p, domain.ConflictError{Resource: "customer pricing", Msg: "lane already priced"}
		}
		return p, err
	}
	id, _ := res.LastInsertId()
	p.ID = domain.ID(id)
	return p, nil
}

func (r PricingRepo) UpdateCustomer(id int64, p models.CustomerPricing) error {
	res, err := r.db().Exec(`
		UPDATE customer_pricing
		SET from_state = ?, to_state = ?, mode = ?, per_kg_rate = ?, min_charge = ?, active = ?
		WHERE id = ?
	`, p.FromState, p.ToState, p.Mode, int64(p.PerKgRate), int64(p.MinCharge), p.Active, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.NotFoundError{Resource: "customer pricing"}
	}
	return nil
}

func (r PricingRepo) DeleteCustomer(id int64) error {
	return r.deleteFrom("customer_pricing", "customer pricing", id)
}

// RateForLane picks the applicable per-kg rate: a matching active corporate
// row for the client wins, otherwise the customer rate card.
func (r PricingRepo) RateForLane(clientGST, fromState, toState, mode string) (utils.Money, bool) {
	var rate int64
	if strings.TrimSpace(clientGST) != "" {
		err := r.db().QueryRow(`
			SELECT per_kg_rate FROM corporate_pricing
			WHERE gst_number = ? AND from_state = ? AND to_state = ? AND mode = ? AND active = 1
			LIMIT 1
		`, clientGST, fromState, toState, mode).Scan(&rate)
		if err == nil {
			return utils.Money(rate), true
		}
	}
	err := r.db().QueryRow(`
		SELECT per_kg_rate FROM customer_pricing
		WHERE from_state = ? AND to_state = ? AND mode = ? AND active = 1
		LIMIT 1
	`, fromState, toState, mode).Scan(&rate)
	if err != nil {
		return 0, false
	}
	return utils.Money(rate), true
}

func (r PricingRepo) deleteFrom(table, resource string, id int64) error {
	res, err := r.db().Exec(`DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.NotFoundError{Resource: resource}
	}
	return nil
}
