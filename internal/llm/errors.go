package llm

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedProvider = errors.New("不支持的AI服务提供商")
	ErrStreamUnsupported   = errors.New("不支持的AI服务提供商流式输出")
	ErrNotImplemented      = errors.New("千帆API暂未实现")
	ErrUnparseable         = errors.New("自定义API返回格式无法解析")
)

// MissingFieldError reports a custom provider without a required field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("自定义API配置缺少必需字段: %s", e.Field)
}

// APIError is a non-200 reply from a provider.
type APIError struct {
	Provider string
	Status   int
	Body     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API错误: %d - %s", e.Provider, e.Status, e.Body)
}
