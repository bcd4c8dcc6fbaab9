package chrono

// OffsetHook observes a value after a setter or arithmetic call and may
// replace the result, typically to re-derive the UTC offset when zone rules
// change around the new local time.
type OffsetHook interface {
	UpdateOffset(ctx *OffsetHookContext)
}

// OffsetHookFunc adapts a bare function to OffsetHook.
type OffsetHookFunc func(ctx *OffsetHookContext)

func (fn OffsetHookFunc) UpdateOffset(ctx *OffsetHookContext) {
	fn(ctx)
}

// OffsetHookContext carries the operation being applied. Hooks read Before
// and write Result.
type OffsetHookContext struct {
	Op       string
	Before   DateTime
	Result   DateTime
	KeepTime bool
	Metadata map[string]any
}

func (ctx *OffsetHookContext) SetMetadata(key string, value any) {
	if ctx == nil || key == "" {
		return
	}
	if ctx.Metadata == nil {
		ctx.Metadata = make(map[string]any)
	}
	ctx.Metadata[key] = value
}

func (ctx *OffsetHookContext) MetadataValue(key string) (any, bool) {
	if ctx == nil || ctx.Metadata == nil {
		return nil, false
	}
	val, ok := ctx.Metadata[key]
	return val, ok
}

// updateOffset runs the configured hooks. Values produced inside a hook do
// not re-enter the hooks.
func updateOffset(op string, before, after DateTime, keepTime bool) DateTime {
	if after.cfg == nil || len(after.cfg.hooks) == 0 || before.inHook || !after.valid {
		return after
	}
	ctx := &OffsetHookContext{Op: op, Before: before, KeepTime: keepTime}
	after.inHook = true
	ctx.Result = after
	for _, hook := range after.cfg.hooks {
		hook.UpdateOffset(ctx)
	}
	ctx.Result.inHook = false
	return ctx.Result
}
