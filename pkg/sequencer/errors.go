package sequencer

import (
	"errors"
	"fmt"
)

// ErrEngineUnavailable 没有提供动画引擎
var ErrEngineUnavailable = errors.New("animation engine unavailable")

// ErrAlreadyStarted 主时间轴每次页面加载只能播放一次
var ErrAlreadyStarted = errors.New("master timeline already started")

// MissingElementError 某个角色在文档中找不到对应元素
type MissingElementError struct {
	Role     Role
	Selector string
}

func (e *MissingElementError) Error() string {
	return fmt.Sprintf("missing element for role %s (selector %q)", e.Role, e.Selector)
}
