package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/tasktab/internal/todo/domain"
)

type adminsRepo struct {
	db dbtx
}

const adminColumns = `id, name, email, password_hash, role, created_at, updated_at`

func scanAdmin(row interface{ Scan(...any) error }) (domain.Admin, error) {
	var a domain.Admin
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *adminsRepo) GetAdminByID(ctx context.Context, id string) (domain.Admin, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE id = ?`, id)

	a, err := scanAdmin(row)
	if err != nil {
		return domain.Admin{}, mapNotFound(err)
	}
	return a, nil
}

func (r *adminsRepo) GetAdminByEmail(ctx context.Context, email string) (domain.Admin, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE email = ?`, email)

	a, err := scanAdmin(row)
	if err != nil {
		return domain.Admin{}, mapNotFound(err)
	}
	return a, nil
}

func (r *adminsRepo) GetSuperAdmin(ctx context.Context) (domain.Admin, error) {
	// The partial unique index guarantees at most one row matches.
	row := r.db.QueryRowContext(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE role = ?`, domain.AdminRoleSuperAdmin)

	a, err := scanAdmin(row)
	if err != nil {
		return domain.Admin{}, mapNotFound(err)
	}
	return a, nil
}

func (r *adminsRepo) CreateAdmin(ctx context.Context, a domain.Admin) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO admins (id, name, email, password_hash, role, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Name, a.Email, a.PasswordHash, a.Role, now, now)
	return mapConstraint(err)
}

func (r *adminsRepo) UpdateAdminProfile(ctx context.Context, adminID, name, email string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE admins SET name = ?, email = ?, updated_at = ? WHERE id = ?`,
		name, email, time.Now().UTC(), adminID)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRow(res)
}

func (r *adminsRepo) UpdateAdminPasswordHash(ctx context.Context, adminID, newHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE admins SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, time.Now().UTC(), adminID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *adminsRepo) IsEmpty(ctx context.Context) (bool, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}
