package enum

/*----------- PushEffectEnum -----------*/

// PushEffectEnum names the effects the push daemon hands to the delivery gateway.
type PushEffectEnum string

const (
	SKIP_WAITING       PushEffectEnum = "skip_waiting"
	CLAIM_CLIENTS      PushEffectEnum = "claim_clients"
	SHOW_NOTIFICATION  PushEffectEnum = "show_notification"
	CLOSE_NOTIFICATION PushEffectEnum = "close_notification"
	FOCUS_CLIENT       PushEffectEnum = "focus_client"
	OPEN_WINDOW        PushEffectEnum = "open_window"
)

func (e PushEffectEnum) IsValid() bool {
	switch e {
	case SKIP_WAITING, CLAIM_CLIENTS, SHOW_NOTIFICATION, CLOSE_NOTIFICATION, FOCUS_CLIENT, OPEN_WINDOW:
		return true
	}
	return false
}
