//go:build integration

// Package integration 黑盒集成测试，需要先启动服务（MySQL、Redis就绪）
//
//	LEAFSIDE_BASE_URL=http://localhost:8080 go test -tags=integration ./test/integration/...
//
// 管理员账号取config.yaml中的admin配置，可用LEAFSIDE_ADMIN_EMAIL/LEAFSIDE_ADMIN_PASSWORD覆盖
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const (
	Timeout      = 10 * time.Second
	TestPassword = "Test1234"
)

var (
	BaseURL       = envOr("LEAFSIDE_BASE_URL", "http://localhost:8080") + "/api"
	AdminEmail    = envOr("LEAFSIDE_ADMIN_EMAIL", "admin@leafside.local")
	AdminPassword = envOr("LEAFSIDE_ADMIN_PASSWORD", "Admin12345")

	seq int64
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Response 统一响应结构
type Response struct {
	Status  int             `json:"-"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type UserData struct {
	ID    uint     `json:"id"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

type TokenData struct {
	User         UserData `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
}

type BookData struct {
	ID          uint            `json:"id"`
	ISBN        string          `json:"isbn"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	IsAvailable bool            `json:"is_available"`
}

type PageData[T any] struct {
	List       []T   `json:"list"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

type CartData struct {
	Items []struct {
		BookID    uint            `json:"book_id"`
		Quantity  int             `json:"quantity"`
		UnitPrice decimal.Decimal `json:"unit_price"`
	} `json:"items"`
	TotalQuantity int             `json:"total_quantity"`
	Total         decimal.Decimal `json:"total"`
}

type OrderData struct {
	ID      uint            `json:"id"`
	OrderNo string          `json:"order_no"`
	Status  string          `json:"status"`
	Total   decimal.Decimal `json:"total"`
	Items   []struct {
		BookID    uint            `json:"book_id"`
		Quantity  int             `json:"quantity"`
		UnitPrice decimal.Decimal `json:"unit_price"`
	} `json:"items"`
}

// Do 发送请求并解析统一响应
func Do(t *testing.T, method, url string, data interface{}, token string) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	require.NoError(t, json.Unmarshal(raw, &result), "解析JSON响应失败: %s", string(raw))
	result.Status = resp.StatusCode
	return &result
}

func PostJSON(t *testing.T, url string, data interface{}, token string) *Response {
	t.Helper()
	return Do(t, http.MethodPost, url, data, token)
}

func GetJSON(t *testing.T, url string, token string) *Response {
	t.Helper()
	return Do(t, http.MethodGet, url, nil, token)
}

// Decode 要求成功响应并解析data
func Decode[T any](t *testing.T, resp *Response) T {
	t.Helper()
	require.Equal(t, 0, resp.Code, "请求失败: %s", resp.Message)
	var v T
	require.NoError(t, json.Unmarshal(resp.Data, &v), "解析data失败: %s", string(resp.Data))
	return v
}

// GenerateTestEmail 时间戳加进程内序号，保证重复运行和并发时不冲突
func GenerateTestEmail(prefix string) string {
	return fmt.Sprintf("%s_%d_%d@test.com", prefix, time.Now().UnixNano(), atomic.AddInt64(&seq, 1))
}

// GenerateTestISBN 978开头的ISBN-13
func GenerateTestISBN() string {
	n := time.Now().UnixNano()/1000 + atomic.AddInt64(&seq, 1)
	return fmt.Sprintf("978%010d", n%10000000000)
}

// RegisterTestUser 注册并登录，返回邮箱和Access Token
func RegisterTestUser(t *testing.T, prefix string) (string, string) {
	t.Helper()
	email := GenerateTestEmail(prefix)

	resp := PostJSON(t, BaseURL+"/account/register", map[string]string{
		"email":    email,
		"password": TestPassword,
	}, "")
	require.Equal(t, 0, resp.Code, "注册失败: %s", resp.Message)

	return email, Login(t, email, TestPassword).AccessToken
}

func Login(t *testing.T, email, password string) TokenData {
	t.Helper()
	resp := PostJSON(t, BaseURL+"/account/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	return Decode[TokenData](t, resp)
}

func AdminToken(t *testing.T) string {
	t.Helper()
	return Login(t, AdminEmail, AdminPassword).AccessToken
}

// CreateTestBook 以管理员身份新增图书，price单位为元
func CreateTestBook(t *testing.T, adminToken, title string, price string) BookData {
	t.Helper()
	resp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
		"isbn":        GenerateTestISBN(),
		"title":       title,
		"author":      "测试作者",
		"publisher":   "测试出版社",
		"genre":       "测试",
		"price":       decimal.RequireFromString(price),
		"description": "集成测试用图书",
	}, adminToken)
	require.Equal(t, http.StatusCreated, resp.Status, "新增图书失败: %s", resp.Message)
	return Decode[BookData](t, resp)
}
