package database

import (
	"database/sql"
	"fmt"
	"time"

	"darasa-schools/app/models"
)

func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, school_id, email, password, first_name, last_name, is_active, created_at, updated_at
			  FROM users WHERE email = $1 AND is_active = true`

	err := db.QueryRow(query, email).Scan(
		&user.ID, &user.SchoolID, &user.Email, &user.Password, &user.FirstName,
		&user.LastName, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserByID(db *sql.DB, schoolID, userID string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, school_id, email, password, first_name, last_name, is_active, created_at, updated_at
			  FROM users WHERE id = $1 AND school_id = $2 AND is_active = true`

	err := db.QueryRow(query, userID, schoolID).Scan(
		&user.ID, &user.SchoolID, &user.Email, &user.Password, &user.FirstName,
		&user.LastName, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserRoles(db *sql.DB, userID string) ([]*models.Role, error) {
	query := `
		SELECT r.id, r.name
		FROM roles r
		JOIN user_roles ur ON r.id = ur.role_id
		WHERE ur.user_id = $1
	`
	rows, err := db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []*models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		roles = append(roles, &role)
	}
	return roles, nil
}

func UpdateUserPassword(db *sql.DB, userID string, hashedPassword string) error {
	query := `UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`
	_, err := db.Exec(query, hashedPassword, userID)
	return err
}

func CreateSession(db *sql.DB, sessionID, userID string, expiresAt time.Time) error {
	query := `INSERT INTO sessions (id, user_id, expires_at, created_at) VALUES ($1, $2, $3, NOW())`
	_, err := db.Exec(query, sessionID, userID, expiresAt)
	return err
}

func DeleteSession(db *sql.DB, sessionID string) error {
	query := `DELETE FROM sessions WHERE id = $1`
	_, err := db.Exec(query, sessionID)
	return err
}

// DeleteExpiredSessions is run by the scheduler.
func DeleteExpiredSessions(db *sql.DB) (int64, error) {
	result, err := db.Exec(`DELETE FROM sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func GetSchoolByID(db *sql.DB, schoolID string) (*models.School, error) {
	school := &models.School{}
	query := `SELECT id, name, motto, address, phone, email, badge_path, created_at, updated_at
			  FROM schools WHERE id = $1`

	err := db.QueryRow(query, schoolID).Scan(
		&school.ID, &school.Name, &school.Motto, &school.Address,
		&school.Phone, &school.Email, &school.BadgePath,
		&school.CreatedAt, &school.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}
	return school, nil
}

func GetAllSubjects(db *sql.DB, schoolID string) ([]*models.Subject, error) {
	query := `SELECT id, school_id, name, code, is_active, created_at, updated_at
			  FROM subjects WHERE school_id = $1 AND is_active = true ORDER BY name`

	rows, err := db.Query(query, schoolID)
	if err != nil {
		return []*models.Subject{}, err
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		subject := &models.Subject{}
		err := rows.Scan(
			&subject.ID, &subject.SchoolID, &subject.Name, &subject.Code,
			&subject.IsActive, &subject.CreatedAt, &subject.UpdatedAt,
		)
		if err != nil {
			continue
		}
		subjects = append(subjects, subject)
	}

	if subjects == nil {
		subjects = []*models.Subject{}
	}

	return subjects, nil
}

func GetAllClasses(db *sql.DB, schoolID string) ([]*models.Class, error) {
	query := `SELECT id, school_id, name, code, is_active, created_at, updated_at
			  FROM classes WHERE school_id = $1 AND is_active = true ORDER BY name`

	rows, err := db.Query(query, schoolID)
	if err != nil {
		return []*models.Class{}, err
	}
	defer rows.Close()

	var classes []*models.Class
	for rows.Next() {
		class := &models.Class{}
		err := rows.Scan(
			&class.ID, &class.SchoolID, &class.Name, &class.Code,
			&class.IsActive, &class.CreatedAt, &class.UpdatedAt,
		)
		if err != nil {
			continue
		}
		classes = append(classes, class)
	}

	if classes == nil {
		classes = []*models.Class{}
	}

	return classes, nil
}

func GetStudentsByClass(db *sql.DB, schoolID, classID string) ([]*models.Student, error) {
	query := `SELECT id, school_id, student_no, first_name, last_name, class_id, is_active, created_at, updated_at
			  FROM students
			  WHERE school_id = $1 AND class_id = $2 AND is_active = true
			  ORDER BY first_name, last_name`

	rows, err := db.Query(query, schoolID, classID)
	if err != nil {
		return []*models.Student{}, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student := &models.Student{}
		err := rows.Scan(
			&student.ID, &student.SchoolID, &student.StudentNo, &student.FirstName,
			&student.LastName, &student.ClassID, &student.IsActive,
			&student.CreatedAt, &student.UpdatedAt,
		)
		if err != nil {
			continue
		}
		students = append(students, student)
	}

	if students == nil {
		students = []*models.Student{}
	}

	return students, nil
}

func GetStudentByID(db *sql.DB, schoolID, studentID string) (*models.Student, error) {
	student := &models.Student{}
	query := `SELECT s.id, s.school_id, s.student_no, s.first_name, s.last_name, s.class_id, s.is_active,
			  s.created_at, s.updated_at, c.name as class_name
			  FROM students s
			  LEFT JOIN classes c ON s.class_id = c.id
			  WHERE s.id = $1 AND s.school_id = $2 AND s.is_active = true`

	var className *string
	err := db.QueryRow(query, studentID, schoolID).Scan(
		&student.ID, &student.SchoolID, &student.StudentNo, &student.FirstName,
		&student.LastName, &student.ClassID, &student.IsActive,
		&student.CreatedAt, &student.UpdatedAt, &className,
	)
	if err != nil {
		return nil, err
	}

	if className != nil && student.ClassID != nil {
		student.Class = &models.Class{ID: *student.ClassID, Name: *className}
	}

	return student, nil
}

// CreateUser creates a user account within a school and assigns a role.
func CreateUser(db *sql.DB, user *models.User, roleName string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO users (school_id, email, password, first_name, last_name, is_active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, true, NOW(), NOW())
			  RETURNING id, created_at, updated_at`

	err = tx.QueryRow(query, user.SchoolID, user.Email, user.Password, user.FirstName, user.LastName).Scan(
		&user.ID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %v", err)
	}

	roleQuery := `INSERT INTO user_roles (user_id, role_id)
				  SELECT $1, r.id FROM roles r WHERE r.name = $2
				  ON CONFLICT (user_id, role_id) DO NOTHING`
	result, err := tx.Exec(roleQuery, user.ID, roleName)
	if err != nil {
		return fmt.Errorf("failed to assign role: %v", err)
	}
	assigned, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if assigned == 0 {
		return fmt.Errorf("unknown role: %s", roleName)
	}

	user.IsActive = true
	return tx.Commit()
}
