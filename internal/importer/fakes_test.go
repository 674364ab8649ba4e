package importer

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"school-import-service/internal/config"
	"school-import-service/internal/model"
	apperrors "school-import-service/pkg/errors"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.BaseURL = "https://erp.example"
	cfg.Identity.RetryAttempts = 3
	cfg.Identity.RetryDelay = time.Millisecond
	cfg.Import.MaxErrorsRecorded = 50
	return cfg
}

// buildWorkbook produces an xlsx fixture with the given header row and data
// rows on the default sheet.
func buildWorkbook(t *testing.T, headers []string, rows ...[]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	hdr := make([]interface{}, len(headers))
	for i, h := range headers {
		hdr[i] = h
	}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &hdr))

	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &cells))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

type fakeRepo struct {
	school        *model.School
	classes       map[string]*model.Class
	roles         map[string]*model.Role
	year          *model.AcademicYear
	departments   map[string]*model.Department
	invCategories map[string]*model.InventoryCategory
	students      map[string]*model.Student
	userEmails    map[string]bool
	bookISBNs     map[string]bool

	identityStatus map[string]model.IdentityStatus
	linked         map[string]string
	linkErr        error

	createdUsers   []*model.User
	createdItems   []*model.InventoryItem
	createdBooks   []*model.LibraryBook
	createdParents []*model.Parent
	importJobs     []*model.ImportJob
	importJobErr   error

	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		school:         &model.School{ID: "school-1", Name: "Springfield High"},
		classes:        map[string]*model.Class{},
		roles:          map[string]*model.Role{},
		departments:    map[string]*model.Department{},
		invCategories:  map[string]*model.InventoryCategory{},
		students:       map[string]*model.Student{},
		userEmails:     map[string]bool{},
		bookISBNs:      map[string]bool{},
		identityStatus: map[string]model.IdentityStatus{},
		linked:         map[string]string{},
	}
}

func (r *fakeRepo) seedRoles(names ...string) {
	for _, name := range names {
		r.nextID++
		r.roles[name] = &model.Role{ID: r.nextID, Name: name}
	}
}

func (r *fakeRepo) seedClass(name string, sections ...string) {
	r.nextID++
	class := &model.Class{ID: r.nextID, SchoolID: r.school.ID, Name: name}
	for _, s := range sections {
		r.nextID++
		class.Sections = append(class.Sections, model.Section{ID: r.nextID, ClassID: class.ID, Name: s})
	}
	r.classes[name] = class
}

func (r *fakeRepo) FindSchool(_ context.Context, id string) (*model.School, error) {
	if r.school != nil && r.school.ID == id {
		return r.school, nil
	}
	return nil, nil
}

func (r *fakeRepo) FindClassWithSections(_ context.Context, _, name string) (*model.Class, error) {
	return r.classes[name], nil
}

func (r *fakeRepo) FindRoleByName(_ context.Context, name string) (*model.Role, error) {
	return r.roles[name], nil
}

func (r *fakeRepo) FindActiveAcademicYear(_ context.Context, _ string) (*model.AcademicYear, error) {
	return r.year, nil
}

func (r *fakeRepo) FindOrCreateDepartment(_ context.Context, name string) (*model.Department, error) {
	if dept, ok := r.departments[name]; ok {
		return dept, nil
	}
	r.nextID++
	dept := &model.Department{ID: r.nextID, Name: name}
	r.departments[name] = dept
	return dept, nil
}

func (r *fakeRepo) FindOrCreateInventoryCategory(_ context.Context, schoolID, name string) (*model.InventoryCategory, error) {
	if cat, ok := r.invCategories[name]; ok {
		return cat, nil
	}
	r.nextID++
	cat := &model.InventoryCategory{ID: r.nextID, SchoolID: schoolID, Name: name}
	r.invCategories[name] = cat
	return cat, nil
}

func (r *fakeRepo) FindStudentByAdmissionNo(_ context.Context, _, admissionNo string) (*model.Student, error) {
	return r.students[admissionNo], nil
}

func (r *fakeRepo) StudentExists(_ context.Context, _, admissionNo, email string) (bool, error) {
	if _, ok := r.students[admissionNo]; ok {
		return true, nil
	}
	for _, s := range r.students {
		if s.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) UserEmailExists(_ context.Context, email string) (bool, error) {
	return r.userEmails[email], nil
}

func (r *fakeRepo) LibraryBookExists(_ context.Context, _, isbn string) (bool, error) {
	return r.bookISBNs[isbn], nil
}

func (r *fakeRepo) createUser(user *model.User) {
	r.createdUsers = append(r.createdUsers, user)
	r.userEmails[user.Email] = true
	r.identityStatus[user.ID] = user.IdentityStatus
}

func (r *fakeRepo) CreateStudent(_ context.Context, user *model.User, student *model.Student) error {
	r.createUser(user)
	r.nextID++
	student.ID = r.nextID
	r.students[student.AdmissionNo] = student
	return nil
}

func (r *fakeRepo) CreateTeachingStaff(_ context.Context, user *model.User, staff *model.TeachingStaff) error {
	r.createUser(user)
	r.nextID++
	staff.ID = r.nextID
	return nil
}

func (r *fakeRepo) CreateNonTeachingStaff(_ context.Context, user *model.User, staff *model.NonTeachingStaff) error {
	r.createUser(user)
	r.nextID++
	staff.ID = r.nextID
	return nil
}

func (r *fakeRepo) CreateParent(_ context.Context, user *model.User, parent *model.Parent) error {
	r.createUser(user)
	r.nextID++
	parent.ID = r.nextID
	r.createdParents = append(r.createdParents, parent)
	return nil
}

func (r *fakeRepo) CreateInventoryItem(_ context.Context, item *model.InventoryItem) error {
	r.nextID++
	item.ID = r.nextID
	r.createdItems = append(r.createdItems, item)
	return nil
}

func (r *fakeRepo) CreateLibraryBook(_ context.Context, book *model.LibraryBook) error {
	r.nextID++
	book.ID = r.nextID
	r.bookISBNs[book.ISBN] = true
	r.createdBooks = append(r.createdBooks, book)
	return nil
}

func (r *fakeRepo) UserIdentityStatus(_ context.Context, userID string) (model.IdentityStatus, error) {
	status, ok := r.identityStatus[userID]
	if !ok {
		return "", fmt.Errorf("user '%s' not found", userID)
	}
	return status, nil
}

func (r *fakeRepo) LinkIdentity(_ context.Context, userID, identityID string) error {
	if r.linkErr != nil {
		return r.linkErr
	}
	if _, ok := r.identityStatus[userID]; !ok {
		return fmt.Errorf("user '%s' not found", userID)
	}
	r.identityStatus[userID] = model.IdentityStatusLinked
	r.linked[userID] = identityID
	return nil
}

func (r *fakeRepo) CreateImportJob(_ context.Context, job *model.ImportJob) error {
	if r.importJobErr != nil {
		return r.importJobErr
	}
	r.importJobs = append(r.importJobs, job)
	return nil
}

type fakeProvisioner struct {
	calls             int
	transientFailures int
	failFor           map[string]error
}

func (p *fakeProvisioner) CreateAccount(_ context.Context, email, _ string) (string, error) {
	p.calls++
	if p.transientFailures > 0 {
		p.transientFailures--
		return "", apperrors.NewRetryableError(errors.New("connection reset"), "HTTP request failed")
	}
	if err := p.failFor[email]; err != nil {
		return "", err
	}
	return "ext-" + email, nil
}

type fakeNotifier struct {
	jobs []model.CredentialJob
	err  error
}

func (n *fakeNotifier) EnqueueCredentialJob(_ context.Context, job model.CredentialJob) error {
	if n.err != nil {
		return n.err
	}
	n.jobs = append(n.jobs, job)
	return nil
}
