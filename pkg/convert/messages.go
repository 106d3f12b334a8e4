package convert

// User-visible messages. The page is Persian only.
const (
	// MsgEmptyInput is shown when the trigger fires with a blank description.
	MsgEmptyInput = "لطفاً شرح فرایند را وارد کنید."

	// MsgConversionFailed is the generic fallback for transport, decode and
	// service errors that carry no message of their own.
	MsgConversionFailed = "تبدیل متن به نمودار با خطا مواجه شد."

	// MsgRenderFailed is used when the viewer rejects the markup without a reason.
	MsgRenderFailed = "نمایش نمودار ممکن نشد."
)
