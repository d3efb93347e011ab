package services

import (
	"errors"
	"fmt"

	"campuscore/models"

	"gorm.io/gorm"
)

type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// audit appends an audit log row. The mutation being audited has already
// landed, so a failed audit write is not surfaced to the caller.
func (s *AdminService) audit(action string, performedBy uint, targetID *uint, details string) {
	log := models.AuditLog{
		Action:      action,
		PerformedBy: performedBy,
		TargetID:    targetID,
		Details:     details,
	}
	s.db.Create(&log)
}

type DashboardStats struct {
	Students    int64 `json:"students"`
	Teachers    int64 `json:"teachers"`
	Courses     int64 `json:"courses"`
	Departments int64 `json:"departments"`
}

func (s *AdminService) GetStats() (*DashboardStats, error) {
	var stats DashboardStats
	if err := s.db.Model(&models.User{}).Where("role = ?", models.RoleStudent).Count(&stats.Students).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.User{}).Where("role = ?", models.RoleTeacher).Count(&stats.Teachers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Course{}).Count(&stats.Courses).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Department{}).Count(&stats.Departments).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

// --- User management ---

func (s *AdminService) GetUsers(role models.Role) ([]models.User, error) {
	query := s.db.Model(&models.User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}

	var users []models.User
	err := query.Order("created_at DESC").Find(&users).Error
	return users, err
}

type CreateUserRequest struct {
	Email    string      `json:"email" binding:"required,email"`
	FullName string      `json:"full_name" binding:"required"`
	Password string      `json:"password" binding:"required,min=8"`
	Role     models.Role `json:"role" binding:"required,oneof=admin teacher student"`
	BatchID  *uint       `json:"batch_id"`
}

func (s *AdminService) CreateUser(adminID uint, req *CreateUserRequest) (*models.User, error) {
	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:          req.Email,
		FullName:       req.FullName,
		Role:           req.Role,
		IsActive:       true,
		HashedPassword: hashed,
		BatchID:        req.BatchID,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	s.audit("CREATE_USER", adminID, &user.ID, fmt.Sprintf("Created user %s", user.Email))
	return &user, nil
}

type UpdateUserRequest struct {
	FullName *string      `json:"full_name"`
	Role     *models.Role `json:"role" binding:"omitempty,oneof=admin teacher student"`
	Password *string      `json:"password" binding:"omitempty,min=8"`
	BatchID  *uint        `json:"batch_id"`
}

func (s *AdminService) UpdateUser(adminID, userID uint, req *UpdateUserRequest) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.BatchID != nil {
		user.BatchID = req.BatchID
	}
	if req.Password != nil && *req.Password != "" {
		hashed, err := HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.HashedPassword = hashed
	}

	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}

	s.audit("UPDATE_USER", adminID, &user.ID, fmt.Sprintf("Updated user %s", user.Email))
	return &user, nil
}

func (s *AdminService) DeleteUser(adminID, userID uint) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.db.Delete(&user).Error; err != nil {
		return err
	}

	s.audit("DELETE_USER", adminID, &userID, fmt.Sprintf("Deleted user %s", user.Email))
	return nil
}

func (s *AdminService) ToggleUserActive(adminID, userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	user.IsActive = !user.IsActive
	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}

	action := "DEACTIVATE_USER"
	if user.IsActive {
		action = "ACTIVATE_USER"
	}
	s.audit(action, adminID, &user.ID, fmt.Sprintf("Toggled user %s", user.Email))
	return &user, nil
}

// --- Academic hierarchy ---

type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

func (s *AdminService) CreateDepartment(adminID uint, req *CreateDepartmentRequest) (*models.Department, error) {
	dept := models.Department{Name: req.Name, Code: req.Code}
	if err := s.db.Create(&dept).Error; err != nil {
		return nil, err
	}
	s.audit("CREATE_DEPARTMENT", adminID, &dept.ID, fmt.Sprintf("Created department %s", dept.Name))
	return &dept, nil
}

func (s *AdminService) GetDepartments() ([]models.Department, error) {
	var depts []models.Department
	err := s.db.Order("name").Find(&depts).Error
	return depts, err
}

func (s *AdminService) DeleteDepartment(adminID, deptID uint) error {
	var dept models.Department
	if err := s.db.First(&dept, deptID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	var programs int64
	if err := s.db.Model(&models.Program{}).Where("department_id = ?", deptID).Count(&programs).Error; err != nil {
		return err
	}
	if programs > 0 {
		return fmt.Errorf("cannot delete department: %d programs belong to it", programs)
	}

	if err := s.db.Delete(&dept).Error; err != nil {
		return err
	}
	s.audit("DELETE_DEPARTMENT", adminID, &deptID, fmt.Sprintf("Deleted department %s", dept.Name))
	return nil
}

type CreateProgramRequest struct {
	DepartmentID  uint   `json:"department_id" binding:"required"`
	Name          string `json:"name" binding:"required"`
	DurationYears int    `json:"duration_years" binding:"omitempty,min=1"`
}

func (s *AdminService) CreateProgram(adminID uint, req *CreateProgramRequest) (*models.Program, error) {
	duration := req.DurationYears
	if duration == 0 {
		duration = 4
	}
	program := models.Program{
		DepartmentID:  req.DepartmentID,
		Name:          req.Name,
		DurationYears: duration,
	}
	if err := s.db.Create(&program).Error; err != nil {
		return nil, err
	}
	s.audit("CREATE_PROGRAM", adminID, &program.ID, fmt.Sprintf("Created program %s", program.Name))
	return &program, nil
}

func (s *AdminService) GetPrograms(departmentID uint) ([]models.Program, error) {
	query := s.db.Model(&models.Program{})
	if departmentID != 0 {
		query = query.Where("department_id = ?", departmentID)
	}
	var programs []models.Program
	err := query.Order("name").Find(&programs).Error
	return programs, err
}

func (s *AdminService) DeleteProgram(adminID, programID uint) error {
	var program models.Program
	if err := s.db.First(&program, programID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	var batches int64
	if err := s.db.Model(&models.Batch{}).Where("program_id = ?", programID).Count(&batches).Error; err != nil {
		return err
	}
	if batches > 0 {
		return fmt.Errorf("cannot delete program: %d batches belong to it", batches)
	}

	if err := s.db.Delete(&program).Error; err != nil {
		return err
	}
	s.audit("DELETE_PROGRAM", adminID, &programID, fmt.Sprintf("Deleted program %s", program.Name))
	return nil
}

// --- Batches ---

type CreateBatchRequest struct {
	ProgramID uint   `json:"program_id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	StartYear int    `json:"start_year" binding:"required"`
}

type UpdateBatchRequest struct {
	Name      *string `json:"name"`
	StartYear *int    `json:"start_year"`
}

func (s *AdminService) GetBatches(programID uint) ([]models.Batch, error) {
	query := s.db.Model(&models.Batch{})
	if programID != 0 {
		query = query.Where("program_id = ?", programID)
	}
	var batches []models.Batch
	err := query.Order("start_year DESC").Find(&batches).Error
	return batches, err
}

func (s *AdminService) GetBatch(batchID uint) (*models.Batch, error) {
	var batch models.Batch
	if err := s.db.First(&batch, batchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

func (s *AdminService) CreateBatch(adminID uint, req *CreateBatchRequest) (*models.Batch, error) {
	batch := models.Batch{
		ProgramID: req.ProgramID,
		Name:      req.Name,
		StartYear: req.StartYear,
		IsActive:  true,
	}
	if err := s.db.Create(&batch).Error; err != nil {
		return nil, err
	}
	s.audit("CREATE_BATCH", adminID, &batch.ID, fmt.Sprintf("Created batch %s", batch.Name))
	return &batch, nil
}

func (s *AdminService) UpdateBatch(adminID, batchID uint, req *UpdateBatchRequest) (*models.Batch, error) {
	batch, err := s.GetBatch(batchID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		batch.Name = *req.Name
	}
	if req.StartYear != nil {
		batch.StartYear = *req.StartYear
	}
	if err := s.db.Save(batch).Error; err != nil {
		return nil, err
	}
	s.audit("UPDATE_BATCH", adminID, &batch.ID, fmt.Sprintf("Updated batch %s", batch.Name))
	return batch, nil
}

func (s *AdminService) ToggleBatchActive(adminID, batchID uint) (*models.Batch, error) {
	batch, err := s.GetBatch(batchID)
	if err != nil {
		return nil, err
	}

	batch.IsActive = !batch.IsActive
	if err := s.db.Save(batch).Error; err != nil {
		return nil, err
	}

	action := "DEACTIVATE_BATCH"
	if batch.IsActive {
		action = "ACTIVATE_BATCH"
	}
	s.audit(action, adminID, &batch.ID, fmt.Sprintf("Toggled batch %s", batch.Name))
	return batch, nil
}

func (s *AdminService) DeleteBatch(adminID, batchID uint) error {
	batch, err := s.GetBatch(batchID)
	if err != nil {
		return err
	}

	var students int64
	if err := s.db.Model(&models.User{}).Where("batch_id = ?", batchID).Count(&students).Error; err != nil {
		return err
	}
	if students > 0 {
		return fmt.Errorf("cannot delete batch: %d students are assigned to this batch", students)
	}

	if err := s.db.Delete(batch).Error; err != nil {
		return err
	}
	s.audit("DELETE_BATCH", adminID, &batchID, fmt.Sprintf("Deleted batch %s", batch.Name))
	return nil
}

func (s *AdminService) GetBatchStudents(batchID uint) ([]models.User, error) {
	if _, err := s.GetBatch(batchID); err != nil {
		return nil, err
	}
	var students []models.User
	err := s.db.Where("batch_id = ?", batchID).Order("full_name").Find(&students).Error
	return students, err
}

// --- Semesters, sections, allocations ---

type CreateSemesterRequest struct {
	Name      string `json:"name" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

func (s *AdminService) CreateSemester(adminID uint, req *CreateSemesterRequest) (*models.Semester, error) {
	start, err := parseDateTime(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDateTime(req.EndDate)
	if err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, errors.New("start_date must not be after end_date")
	}

	semester := models.Semester{Name: req.Name, StartDate: start, EndDate: end}
	if err := s.db.Create(&semester).Error; err != nil {
		return nil, err
	}
	s.audit("CREATE_SEMESTER", adminID, &semester.ID, fmt.Sprintf("Created semester %s", semester.Name))
	return &semester, nil
}

type CreateSectionRequest struct {
	CourseID   uint   `json:"course_id" binding:"required"`
	SemesterID *uint  `json:"semester_id"`
	Name       string `json:"name" binding:"required"`
	Capacity   int    `json:"capacity" binding:"omitempty,min=1"`
}

func (s *AdminService) CreateSection(adminID uint, req *CreateSectionRequest) (*models.Section, error) {
	var course models.Course
	if err := s.db.First(&course, req.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	capacity := req.Capacity
	if capacity == 0 {
		capacity = 40
	}

	section := models.Section{
		CourseID:   req.CourseID,
		SemesterID: req.SemesterID,
		Name:       req.Name,
		Capacity:   capacity,
	}
	if err := s.db.Create(&section).Error; err != nil {
		return nil, err
	}
	s.audit("CREATE_SECTION", adminID, &section.ID, fmt.Sprintf("Created section %s for course %s", section.Name, course.Code))
	return &section, nil
}

func (s *AdminService) AssignTeacher(adminID, sectionID, teacherID uint) (string, error) {
	var section models.Section
	if err := s.db.First(&section, sectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}

	var teacher models.User
	if err := s.db.First(&teacher, teacherID).Error; err != nil || teacher.Role != models.RoleTeacher {
		return "", fmt.Errorf("%w: teacher", ErrNotFound)
	}

	section.TeacherID = &teacherID
	if err := s.db.Save(&section).Error; err != nil {
		return "", err
	}

	s.audit("ASSIGN_TEACHER", adminID, &sectionID, fmt.Sprintf("Assigned %s to %s", teacher.FullName, section.Name))
	return fmt.Sprintf("Assigned %s to %s", teacher.FullName, section.Name), nil
}

func (s *AdminService) GetAuditLogs(limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var logs []models.AuditLog
	err := s.db.Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
