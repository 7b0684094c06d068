package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIClient handles HTTP communication with the backend
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL + "/api/v1",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Response types matching backend

type LoginResponse struct {
	Token string `json:"token"`
}

type CheckResponse struct {
	UserID   string   `json:"userId"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

func (c *APIClient) Register(username, email, password string) error {
	_, status, err := c.post("/auth/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return err
	}
	if status != http.StatusCreated {
		return fmt.Errorf("register returned %d", status)
	}
	return nil
}

func (c *APIClient) Login(username, password string) (string, error) {
	body, status, err := c.post("/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("login returned %d: %s", status, body)
	}

	var resp LoginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (c *APIClient) Check(token string) (*CheckResponse, int, error) {
	body, status, err := c.get("/auth/check", token)
	if err != nil {
		return nil, 0, err
	}
	if status != http.StatusOK {
		return nil, status, nil
	}

	var resp CheckResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, status, err
	}
	return &resp, status, nil
}

func (c *APIClient) Logout(token string) error {
	_, status, err := c.post("/auth/logout", token, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("logout returned %d", status)
	}
	return nil
}

func (c *APIClient) AddGame(token, title, description string, genres []string) (int, error) {
	_, status, err := c.post("/games", token, map[string]interface{}{
		"title":       title,
		"description": description,
		"genres":      genres,
	})
	return status, err
}

func (c *APIClient) RateGame(token, gameID string, rating int) (int, error) {
	_, status, err := c.post(fmt.Sprintf("/games/%s/rate", gameID), token, map[string]int{
		"rating": rating,
	})
	return status, err
}

func (c *APIClient) post(path, token string, payload interface{}) ([]byte, int, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, reqBody)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.do(req)
}

func (c *APIClient) get(path, token string) ([]byte, int, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, 0, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.do(req)
}

func (c *APIClient) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}
