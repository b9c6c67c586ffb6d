// Package api is the remote access layer: one typed method per remote
// operation, all speaking the uniform {success,data,error} envelope.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/kutbudev/lifedeck-cli/internal/apierrors"
	"github.com/kutbudev/lifedeck-cli/internal/config"
	"github.com/kutbudev/lifedeck-cli/internal/decode"
	"github.com/kutbudev/lifedeck-cli/internal/models"
	"github.com/kutbudev/lifedeck-cli/internal/store"
)

const defaultBaseURL = "http://localhost:8787/v1"

var _ store.Remote = (*Client)(nil)

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	APIKey     string

	// Agent metadata for all requests (set via SetAgentInfo)
	AgentName      string
	AgentModel     string
	AgentSessionID string
}

// NewClient creates a new API client
func NewClient() *Client {
	baseURL := os.Getenv("LIFEDECK_API_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	// Load API key from config
	cfg, err := config.LoadConfig()
	apiKey := ""
	if err == nil && cfg.APIKey != "" {
		apiKey = cfg.APIKey
	}

	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetAgentInfo sets agent metadata that will be included in all subsequent requests.
// This allows all API calls to be attributed to the correct agent session.
func (c *Client) SetAgentInfo(name, model, sessionID string) {
	c.AgentName = name
	c.AgentModel = model
	c.AgentSessionID = sessionID
}

// makeRequest sends one request and unwraps the response envelope. Status
// codes map onto the error taxonomy; a success=false envelope passes the
// remote's message through verbatim.
func (c *Client) makeRequest(method, endpoint string, body interface{}) (json.RawMessage, error) {
	url := c.BaseURL + endpoint

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, apierrors.Wrap("failed to marshal request body", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, apierrors.Wrap("failed to create request", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
	if c.AgentName != "" {
		req.Header.Set("X-Created-Via", "mcp")
		req.Header.Set("X-Agent-Name", c.AgentName)
	}
	if c.AgentModel != "" {
		req.Header.Set("X-Agent-Model", c.AgentModel)
	}
	if c.AgentSessionID != "" {
		req.Header.Set("X-Agent-Session-ID", c.AgentSessionID)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, apierrors.Wrap("request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.Wrap("failed to read response body", err)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, apierrors.Unauthorized(envelopeMessage(respBody))
	case http.StatusNotFound:
		return nil, apierrors.NotFound(envelopeMessage(respBody))
	}

	var envelope models.APIResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, apierrors.Wrap(fmt.Sprintf("malformed response (status %d)", resp.StatusCode), err)
	}
	if !envelope.Success {
		return nil, apierrors.Remote(envelope.Error)
	}
	return envelope.Data, nil
}

// envelopeMessage extracts the error string from an envelope body, falling
// back to the raw body when the envelope itself is malformed.
func envelopeMessage(body []byte) string {
	var envelope models.APIResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		return envelope.Error
	}
	return string(body)
}

// fetchRows GETs a list endpoint and returns the raw rows.
func (c *Client) fetchRows(endpoint string) ([]decode.Row, error) {
	data, err := c.makeRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	var rows []decode.Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, apierrors.Decode("row list", err)
	}
	return rows, nil
}

// fetchRow runs a single-row operation and returns the raw row.
func (c *Client) fetchRow(method, endpoint string, body interface{}) (decode.Row, error) {
	data, err := c.makeRequest(method, endpoint, body)
	if err != nil {
		return nil, err
	}
	var row decode.Row
	if err := json.Unmarshal(data, &row); err != nil {
		return nil, apierrors.Decode("row", err)
	}
	return row, nil
}

// decodeRows maps raw rows to typed records. A malformed row is dropped
// with a warning rather than failing the whole list; a single bad row
// must not make the entire family unreadable.
func decodeRows[T any](rows []decode.Row, what string, dec func(decode.Row) (T, error)) []T {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		item, err := dec(row)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping %s row: %v\n", what, err)
			continue
		}
		out = append(out, item)
	}
	return out
}

func listEndpoint(family string, userID uuid.UUID) string {
	return "/" + family + "?user_id=" + userID.String()
}

// ---- projects ----

func (c *Client) ListProjects(userID uuid.UUID) ([]models.Project, error) {
	rows, err := c.fetchRows(listEndpoint("projects", userID))
	if err != nil {
		return nil, err
	}
	return decodeRows(rows, "project", decode.Project), nil
}

func (c *Client) CreateProject(input models.ProjectInput) (models.Project, error) {
	row, err := c.fetchRow(http.MethodPost, "/projects", input)
	if err != nil {
		return models.Project{}, err
	}
	return decode.Project(row)
}

func (c *Client) UpdateProject(id uuid.UUID, patch map[string]interface{}) (models.Project, error) {
	row, err := c.fetchRow(http.MethodPut, "/projects/"+id.String(), patch)
	if err != nil {
		return models.Project{}, err
	}
	return decode.Project(row)
}

func (c *Client) DeleteProject(id uuid.UUID) error {
	_, err := c.makeRequest(http.MethodDelete, "/projects/"+id.String(), nil)
	return err
}

func (c *Client) ClearProjectCategory(categoryID uuid.UUID) error {
	_, err := c.makeRequest(http.MethodPost, "/projects/clear-category/"+categoryID.String(), nil)
	return err
}

// ---- tasks ----

func (c *Client) ListTasks(userID uuid.UUID) ([]models.Task, error) {
	rows, err := c.fetchRows(listEndpoint("tasks", userID))
	if err != nil {
		return nil, err
	}
	return decodeRows(rows, "task", decode.Task), nil
}

func (c *Client) CreateTask(input models.TaskInput) (models.Task, error) {
	row, err := c.fetchRow(http.MethodPost, "/tasks", input)
	if err != nil {
		return models.Task{}, err
	}
	return decode.Task(row)
}

func (c *Client) UpdateTask(id uuid.UUID, patch map[string]interface{}) (models.Task, error) {
	row, err := c.fetchRow(http.MethodPut, "/tasks/"+id.String(), patch)
	if err != nil {
		return models.Task{}, err
	}
	return decode.Task(row)
}

func (c *Client) DeleteTask(id uuid.UUID) error {
	_, err := c.makeRequest(http.MethodDelete, "/tasks/"+id.String(), nil)
	return err
}

func (c *Client) DeleteProjectTasks(projectID uuid.UUID) error {
	_, err := c.makeRequest(http.MethodDelete, "/projects/"+projectID.String()+"/tasks", nil)
	return err
}

func (c *Client) ClearTaskCategory(categoryID uuid.UUID) error {
	_, err := c.makeRequest(http.MethodPost, "/tasks/clear-category/"+categoryID.String(), nil)
	return err
}

// ---- goals ----

func (c *Client) ListGoals(userID uuid.UUID) ([]models.Goal, error) {
	rows, err := c.fetchRows(listEndpoint("goals", userID))
	if err != nil {
		return nil, err
	}
	return decodeRows(rows, "goal", decode.Goal), nil
}

func (c *Client) CreateGoal(input models.GoalInput) (models.Goal, error) {
	row, err := c.fetchRow(http.MethodPost, "/goals", input)
	if err != nil {
		return models.Goal{}, err
	}
	return decode.Goal(row)
}

func (c *Client) UpdateGoal(id uuid.UUID, patch map[string]interface{}) (models.Goal, error) {
	row, err := c.fetchRow(http.MethodPut, "/goals/"+id.String(), patch)
	if err != nil {
		return models.Goal{}, err
	}
	return decode.Goal(row)
}

func (c *Client) DeleteGoal(id uuid.UUID) error {
	_, err := c.makeRequest(http.MethodDelete, "/goals/"+id.String(), nil)
	return err
}

func (c *Client) DeleteGoalDailyGoals(goalID uuid.UUID) error {
	_, err := c.makeRequest(http.MethodDelete, "/goals/"+goalID.String()+"/daily-goals", nil)
	return err
}

func (c *Client) ClearGoalCategory(categoryID uuid.UUID) error {
	_, err := c.makeRequest(http.MethodPost, "/goals/clear-category/"+categoryID.String(), nil)
	return err
}

func (c *Client) ListDailyGoals(userID uuid.UUID) ([]models.DailyGoal, error) {
	rows, err := c.fetchRows(listEndpoint("daily-goals", userID))
	if err != nil {
		return nil, err
	}
	return decodeRows(rows, "daily goal", decode.DailyGoal), nil
}

func (c *Client) CreateDailyGoal(input models.DailyGoalInput) (models.DailyGoal, error) {
	row, err := c.fetchRow(http.MethodPost, "/daily-goals", input)
	if err != nil {
		return models.DailyGoal{}, err
	}
	return decode.DailyGoal(row)
}

func (c *Client) UpdateDailyGoal(id uuid.UUID, patch map[string]interface{}) (models.DailyGoal, error) {
	row, err := c.fetchRow(http.MethodPut, "/daily-goals/"+id.String(), patch)
	if err != nil {
		return models.DailyGoal{}, err
	}
	return decode.DailyGoal(row)
}

func (c *Client) DeleteDailyGoal(id uuid.UUID) error {
	_, err := c.makeRequest(http.MethodDelete, "/daily-goals/"+id.String(), nil)
	return err
}

// ---- habits ----

func (c *Client) ListHabits(userID uuid.UUID) ([]models.Habit, error) {
	rows, err := c.fetchRows(listEndpoint("habits", userID))
	if err != nil {
		return nil, err
	}
	return decodeRows(rows, "habit", decode.Habit), nil
}

func (c *Client) CreateHabit(input models.HabitInput) (models.Habit, error) {
	row, err := c.fetchRow(http.MethodPost, "/habits", input)
	if err != nil {
		return models.Habit{}, err
	}
	return decode.Habit(row)
}

func (c *Client) UpdateHabit(id uuid.UUID, patch map[string]interface{}) (models.Habit, error) {
	row, err := c.fetchRow(http.MethodPut, "/habits/"+id.String(), patch)
	if err != nil {
		return models.Habit{}, err
	}
	return decode.Habit(row)
}

func (c *Client) DeleteHabit(id uuid.UUID) error {
	_, err := c.makeRequest(http.MethodDelete, "/habits/"+id.String(), nil)
	return err
}

func (c *Client) DeleteHabitLogs(habitID uuid.UUID) error {
	_, err := c.makeRequest(http.MethodDelete, "/habits/"+habitID.String()+"/logs", nil)
	return err
}

func (c *Client) ListHabitLogs(userID uuid.UUID) ([]models.HabitLog, error) {
	rows, err := c.fetchRows(listEndpoint("habit-logs", userID))
	if err != nil {
		return nil, err
	}
	return decodeRows(rows, "habit log", decode.HabitLog), nil
}

func (c *Client) CreateHabitLog(input models.HabitLogInput) (models.HabitLog, error) {
	row, err := c.fetchRow(http.MethodPost, "/habit-logs", input)
	if err != nil {
		return models.HabitLog{}, err
	}
	return decode.HabitLog(row)
}

func (c *Client) UpdateHabitLog(id uuid.UUID, patch map[string]interface{}) (models.HabitLog, error) {
	row, err := c.fetchRow(http.MethodPut, "/habit-logs/"+id.String(), patch)
	if err != nil {
		return models.HabitLog{}, err
	}
	return decode.HabitLog(row)
}

func (c *Client) DeleteHabitLog(id uuid.UUID) error {
	_, err := c.makeRequest(http.MethodDelete, "/habit-logs/"+id.String(), nil)
	return err
}

// ---- days ----

func (c *Client) ListDays(userID uuid.UUID) ([]models.Day, error) {
	rows, err := c.fetchRows(listEndpoint("days", userID))
	if err != nil {
		return nil, err
	}
	return decodeRows(rows, "day", decode.Day), nil
}

func (c *Client) GetDayByDate(userID uuid.UUID, date string) (models.Day, error) {
	row, err := c.fetchRow(http.MethodGet, "/days/by-date/"+date+"?user_id="+userID.String(), nil)
	if err != nil {
		return models.Day{}, err
	}
	return decode.Day(row)
}

func (c *Client) CreateDay(input models.DayInput) (models.Day, error) {
	row, err := c.fetchRow(http.MethodPost, "/days", input)
	if err != nil {
		return models.Day{}, err
	}
	return decode.Day(row)
}

func (c *Client) UpdateDay(id uuid.UUID, patch map[string]interface{}) (models.Day, error) {
	row, err := c.fetchRow(http.MethodPut, "/days/"+id.String(), patch)
	if err != nil {
		return models.Day{}, err
	}
	return decode.Day(row)
}

func (c *Client) DeleteDay(id uuid.UUID) error {
	_, err := c.makeRequest(http.MethodDelete, "/days/"+id.String(), nil)
	return err
}

// ---- notes ----

func (c *Client) ListNotes(userID uuid.UUID) ([]models.Note, error) {
	rows, err := c.fetchRows(listEndpoint("notes", userID))
	if err != nil {
		return nil, err
	}
	return decodeRows(rows, "note", decode.Note), nil
}

func (c *Client) CreateNote(input models.NoteInput) (models.Note, error) {
	row, err := c.fetchRow(http.MethodPost, "/notes", input)
	if err != nil {
		return models.Note{}, err
	}
	return decode.Note(row)
}

func (c *Client) UpdateNote(id uuid.UUID, patch map[string]interface{}) (models.Note, error) {
	row, err := c.fetchRow(http.MethodPut, "/notes/"+id.String(), patch)
	if err != nil {
		return models.Note{}, err
	}
	return decode.Note(row)
}

func (c *Client) DeleteNote(id uuid.UUID) error {
	_, err := c.makeRequest(http.MethodDelete, "/notes/"+id.String(), nil)
	return err
}

func (c *Client) ClearNoteCategory(categoryID uuid.UUID) error {
	_, err := c.makeRequest(http.MethodPost, "/notes/clear-category/"+categoryID.String(), nil)
	return err
}

// ---- categories ----

func (c *Client) ListCategories(userID uuid.UUID) ([]models.Category, error) {
	rows, err := c.fetchRows(listEndpoint("categories", userID))
	if err != nil {
		return nil, err
	}
	return decodeRows(rows, "category", decode.Category), nil
}

func (c *Client) CreateCategory(input models.CategoryInput) (models.Category, error) {
	row, err := c.fetchRow(http.MethodPost, "/categories", input)
	if err != nil {
		return models.Category{}, err
	}
	return decode.Category(row)
}

func (c *Client) UpdateCategory(id uuid.UUID, patch map[string]interface{}) (models.Category, error) {
	row, err := c.fetchRow(http.MethodPut, "/categories/"+id.String(), patch)
	if err != nil {
		return models.Category{}, err
	}
	return decode.Category(row)
}

func (c *Client) DeleteCategory(id uuid.UUID) error {
	_, err := c.makeRequest(http.MethodDelete, "/categories/"+id.String(), nil)
	return err
}

// ---- tags ----

func (c *Client) ListTags(userID uuid.UUID) ([]models.Tag, error) {
	rows, err := c.fetchRows(listEndpoint("tags", userID))
	if err != nil {
		return nil, err
	}
	return decodeRows(rows, "tag", decode.Tag), nil
}

func (c *Client) CreateTag(input models.TagInput) (models.Tag, error) {
	row, err := c.fetchRow(http.MethodPost, "/tags", input)
	if err != nil {
		return models.Tag{}, err
	}
	return decode.Tag(row)
}

func (c *Client) DeleteTag(id uuid.UUID) error {
	_, err := c.makeRequest(http.MethodDelete, "/tags/"+id.String(), nil)
	return err
}

func (c *Client) ListTagLinks(userID uuid.UUID) ([]models.TagLink, error) {
	rows, err := c.fetchRows(listEndpoint("tag-links", userID))
	if err != nil {
		return nil, err
	}
	return decodeRows(rows, "tag link", decode.TagLink), nil
}

func (c *Client) CreateTagLink(input models.TagLinkInput) (models.TagLink, error) {
	row, err := c.fetchRow(http.MethodPost, "/tag-links", input)
	if err != nil {
		return models.TagLink{}, err
	}
	return decode.TagLink(row)
}

func (c *Client) DeleteTagLink(id uuid.UUID) error {
	_, err := c.makeRequest(http.MethodDelete, "/tag-links/"+id.String(), nil)
	return err
}

func (c *Client) DeleteTagLinks(tagID uuid.UUID) error {
	_, err := c.makeRequest(http.MethodDelete, "/tags/"+tagID.String()+"/links", nil)
	return err
}

// ---- learning ----

func (c *Client) ListTopics(userID uuid.UUID) ([]models.LearningTopic, error) {
	rows, err := c.fetchRows(listEndpoint("topics", userID))
	if err != nil {
		return nil, err
	}
	return decodeRows(rows, "learning topic", decode.Topic), nil
}

func (c *Client) CreateTopic(input models.TopicInput) (models.LearningTopic, error) {
	row, err := c.fetchRow(http.MethodPost, "/topics", input)
	if err != nil {
		return models.LearningTopic{}, err
	}
	return decode.Topic(row)
}

func (c *Client) UpdateTopic(id uuid.UUID, patch map[string]interface{}) (models.LearningTopic, error) {
	row, err := c.fetchRow(http.MethodPut, "/topics/"+id.String(), patch)
	if err != nil {
		return models.LearningTopic{}, err
	}
	return decode.Topic(row)
}

func (c *Client) DeleteTopic(id uuid.UUID) error {
	_, err := c.makeRequest(http.MethodDelete, "/topics/"+id.String(), nil)
	return err
}

func (c *Client) ListConcepts(userID uuid.UUID) ([]models.LearningConcept, error) {
	rows, err := c.fetchRows(listEndpoint("concepts", userID))
	if err != nil {
		return nil, err
	}
	return decodeRows(rows, "learning concept", decode.Concept), nil
}

func (c *Client) CreateConcept(input models.ConceptInput) (models.LearningConcept, error) {
	row, err := c.fetchRow(http.MethodPost, "/concepts", input)
	if err != nil {
		return models.LearningConcept{}, err
	}
	return decode.Concept(row)
}

func (c *Client) UpdateConcept(id uuid.UUID, patch map[string]interface{}) (models.LearningConcept, error) {
	row, err := c.fetchRow(http.MethodPut, "/concepts/"+id.String(), patch)
	if err != nil {
		return models.LearningConcept{}, err
	}
	return decode.Concept(row)
}

func (c *Client) DeleteConcept(id uuid.UUID) error {
	_, err := c.makeRequest(http.MethodDelete, "/concepts/"+id.String(), nil)
	return err
}

// ---- roads ----

func (c *Client) ListRoads(userID uuid.UUID) ([]models.Road, error) {
	rows, err := c.fetchRows(listEndpoint("roads", userID))
	if err != nil {
		return nil, err
	}
	return decodeRows(rows, "road", decode.Road), nil
}

func (c *Client) CreateRoad(input models.RoadInput) (models.Road, error) {
	row, err := c.fetchRow(http.MethodPost, "/roads", input)
	if err != nil {
		return models.Road{}, err
	}
	return decode.Road(row)
}

func (c *Client) UpdateRoad(id uuid.UUID, patch map[string]interface{}) (models.Road, error) {
	row, err := c.fetchRow(http.MethodPut, "/roads/"+id.String(), patch)
	if err != nil {
		return models.Road{}, err
	}
	return decode.Road(row)
}

func (c *Client) DeleteRoad(id uuid.UUID) error {
	_, err := c.makeRequest(http.MethodDelete, "/roads/"+id.String(), nil)
	return err
}

func (c *Client) ListMilestones(userID uuid.UUID) ([]models.Milestone, error) {
	rows, err := c.fetchRows(listEndpoint("milestones", userID))
	if err != nil {
		return nil, err
	}
	return decodeRows(rows, "milestone", decode.Milestone), nil
}

func (c *Client) CreateMilestone(input models.MilestoneInput) (models.Milestone, error) {
	row, err := c.fetchRow(http.MethodPost, "/milestones", input)
	if err != nil {
		return models.Milestone{}, err
	}
	return decode.Milestone(row)
}

func (c *Client) UpdateMilestone(id uuid.UUID, patch map[string]interface{}) (models.Milestone, error) {
	row, err := c.fetchRow(http.MethodPut, "/milestones/"+id.String(), patch)
	if err != nil {
		return models.Milestone{}, err
	}
	return decode.Milestone(row)
}

func (c *Client) DeleteMilestone(id uuid.UUID) error {
	_, err := c.makeRequest(http.MethodDelete, "/milestones/"+id.String(), nil)
	return err
}
