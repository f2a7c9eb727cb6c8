// Package objects 提供 map[string]any 形式的通用对象工具.
package objects

import "github.com/mitchellh/copystructure"

// IsObject 判断 v 是否为非空的 map[string]any.
func IsObject(v any) bool {
	m, ok := v.(map[string]any)
	return ok && m != nil
}

// MergeDeep 深度合并两个对象，返回新对象，不修改任何输入.
//
// 合并规则:
//   - source 的键覆盖 target 的键
//   - 两边都是对象时递归合并
//   - source 是对象而 target 没有该键或该键不是对象时，使用 source 的深拷贝
//   - 其他值（包括切片）直接替换
//
// 示例:
//
//	objects.MergeDeep(
//	    map[string]any{"a": map[string]any{"x": 1, "y": 2}},
//	    map[string]any{"a": map[string]any{"y": 3}, "b": true},
//	)
//	// {"a": {"x": 1, "y": 3}, "b": true}
func MergeDeep(target, source map[string]any) map[string]any {
	output := deepCopy(target)
	for key, value := range source {
		src, ok := value.(map[string]any)
		if !ok || src == nil {
			output[key] = deepCopyValue(value)
			continue
		}
		if dst, ok := target[key].(map[string]any); ok && dst != nil {
			output[key] = MergeDeep(dst, src)
			continue
		}
		output[key] = deepCopy(src)
	}
	return output
}

// deepCopy 深拷贝对象，nil 返回空对象.
func deepCopy(m map[string]any) map[string]any {
	if m == nil {
		return make(map[string]any)
	}
	if c, ok := deepCopyValue(m).(map[string]any); ok && c != nil {
		return c
	}
	// 拷贝失败时退化为浅拷贝
	c := make(map[string]any, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// deepCopyValue 深拷贝任意值，无法拷贝时返回原值.
func deepCopyValue(v any) any {
	if v == nil {
		return nil
	}
	c, err := copystructure.Copy(v)
	if err != nil {
		return v
	}
	return c
}
