// Package dsapi 封装对 Dreaming Spanish 上游接口的只读访问。
package dsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL 是上游接口的默认地址。
const DefaultBaseURL = "https://www.dreamingspanish.com/.netlify/functions"

const dateFormat = "2006-01-02"

// ErrInvalidToken 表示令牌缺失、格式不对或已过期。
var ErrInvalidToken = errors.New("invalid or expired bearer token")

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DayWatchedTime 是上游返回的单日观看记录，未做排序保证。
type DayWatchedTime struct {
	Date        string `json:"date"`
	TimeSeconds int    `json:"timeSeconds"`
	GoalReached bool   `json:"goalReached"`
}

// ParseDate 把记录中的日期解析成 UTC 零点时间。
func (d DayWatchedTime) ParseDate() (time.Time, error) {
	t, err := time.ParseInLocation(dateFormat, d.Date, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day date %q: %w", d.Date, err)
	}
	return t, nil
}

// UserInfo 汇总接口侧的用户配置。
type UserInfo struct {
	InitialTimeSeconds int
	DailyGoalSeconds   int
}

// Client 是带令牌认证的上游 API 客户端。
type Client struct {
	http    httpDoer
	baseURL string
}

// NewClient 构造客户端，baseURL 为空时使用默认地址。
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
	}
}

// SetHTTPClient 允许在测试中替换底层 HTTP 客户端。
func (c *Client) SetHTTPClient(client httpDoer) {
	if client == nil {
		c.http = &http.Client{Timeout: 30 * time.Second}
		return
	}
	c.http = client
}

func (c *Client) get(ctx context.Context, token, path string, dst interface{}) error {
	if token == "" {
		return ErrInvalidToken
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request for %s: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrInvalidToken
	case resp.StatusCode >= http.StatusBadRequest:
		return fmt.Errorf("upstream %s returned %s", path, resp.Status)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// DayWatchedTimes 拉取逐日观看记录。记录顺序不可依赖，由调用方排序。
func (c *Client) DayWatchedTimes(ctx context.Context, token string) ([]DayWatchedTime, error) {
	var payload struct {
		DayWatchedTimes []DayWatchedTime `json:"dayWatchedTimes"`
	}
	if err := c.get(ctx, token, "/dayWatchedTimes", &payload); err != nil {
		return nil, err
	}
	return payload.DayWatchedTimes, nil
}

// UserInfo 拉取初始时长与每日目标设置。
func (c *Client) UserInfo(ctx context.Context, token string) (UserInfo, error) {
	var payload struct {
		User struct {
			InitialTime      int `json:"initialTime"`
			DailyGoalSeconds int `json:"dailyGoalSeconds"`
		} `json:"user"`
	}
	if err := c.get(ctx, token, "/user", &payload); err != nil {
		return UserInfo{}, err
	}
	return UserInfo{
		InitialTimeSeconds: payload.User.InitialTime,
		DailyGoalSeconds:   payload.User.DailyGoalSeconds,
	}, nil
}
