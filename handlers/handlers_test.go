package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"racelog/database"
	"racelog/models"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		_ = database.Close(db)
	})

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	New(db).Register(app)
	return app, db
}

func seedCourse(t *testing.T, db *gorm.DB) {
	t.Helper()

	require.NoError(t, db.Create(&models.Team{ID: 1, Name: "Foxes", JoinCode: "code-foxes"}).Error)
	require.NoError(t, db.Create(&models.Checkpoint{ID: 2, Name: "Old Mill", Position: 1}).Error)
	require.NoError(t, db.Create(&models.Checkpoint{ID: 3, Name: "River Ford", Position: 2}).Error)
	require.NoError(t, db.Create(&models.Task{ID: 10, CheckpointID: 2, Name: "Knot relay", Points: 5}).Error)
	require.NoError(t, db.Create(&models.Task{ID: 11, CheckpointID: 2, Name: "Map bearing", Points: 2}).Error)
	require.NoError(t, db.Create(&models.Task{ID: 12, CheckpointID: 3, Name: "Raft crossing", Points: 8}).Error)
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func getJSON(t *testing.T, app *fiber.App, path string, out any) *http.Response {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestLogDeparture_Endpoint(t *testing.T) {
	app, db := newTestApp(t)
	seedCourse(t, db)

	body := fiber.Map{
		"team":       1,
		"checkpoint": 2,
		"tasks": []fiber.Map{
			{"id": 10, "completed": true},
			{"id": 11, "completed": false},
		},
	}

	resp := postJSON(t, app, "/taskslog", body)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// identical resubmission is a rejected duplicate, not a second write
	resp = postJSON(t, app, "/taskslog", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var n int64
	require.NoError(t, db.Model(&models.TaskLog{}).Count(&n).Error)
	assert.EqualValues(t, 2, n)
}

func TestLogDeparture_EndpointValidation(t *testing.T) {
	app, db := newTestApp(t)
	seedCourse(t, db)

	resp := postJSON(t, app, "/taskslog", fiber.Map{"team": 1, "checkpoint": 2, "tasks": []fiber.Map{}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, app, "/taskslog", fiber.Map{"checkpoint": 2, "tasks": []fiber.Map{{"id": 10}}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	req := httptest.NewRequest(http.MethodPost, "/taskslog", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	raw, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, raw.StatusCode)

	var n int64
	require.NoError(t, db.Model(&models.TaskLog{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestLogArrival_Endpoint(t *testing.T) {
	app, db := newTestApp(t)
	seedCourse(t, db)

	body := fiber.Map{"team": 1, "checkpoint": 2, "status": models.StatusArrived}

	resp := postJSON(t, app, "/arrivallog", body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, app, "/arrivallog", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, app, "/arrivallog", fiber.Map{"team": 1, "checkpoint": 2})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetTeams_IncludesPoints(t *testing.T) {
	app, db := newTestApp(t)
	seedCourse(t, db)

	resp := postJSON(t, app, "/taskslog", fiber.Map{
		"team":       1,
		"checkpoint": 2,
		"tasks": []fiber.Map{
			{"id": 10, "completed": true},
			{"id": 11, "completed": false},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var teams []struct {
		ID     uint   `json:"id"`
		Name   string `json:"name"`
		Points int    `json:"points"`
	}
	resp = getJSON(t, app, "/teams", &teams)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, teams, 1)
	assert.Equal(t, "Foxes", teams[0].Name)
	assert.Equal(t, 5, teams[0].Points)
}

func TestGetTasks_CheckpointFilter(t *testing.T) {
	app, db := newTestApp(t)
	seedCourse(t, db)

	var tasks []models.Task
	resp := getJSON(t, app, "/tasks", &tasks)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, tasks, 3)

	tasks = nil
	resp = getJSON(t, app, "/tasks?c=3", &tasks)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, tasks, 1)
	assert.Equal(t, uint(12), tasks[0].ID)

	resp = getJSON(t, app, "/tasks?c=drop+table", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
