package domain

import "time"

const (
	TopicUserRegistered = "auth.user.registered"
	TopicUserLoggedIn   = "auth.user.logged_in"
)

// UserRegisteredEvent 用户注册事件
type UserRegisteredEvent struct {
	UserID    uint      `json:"user_id"`
	Email     string    `json:"email"`
	Timestamp time.Time `json:"timestamp"`
}

// UserLoggedInEvent 用户登录事件
type UserLoggedInEvent struct {
	UserID    uint      `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}
