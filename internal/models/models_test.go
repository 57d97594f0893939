package models

import "testing"

func TestCategoryByIndex(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{1, "飲食"},
		{2, "交通"},
		{3, "娛樂"},
		{4, "購物"},
		{5, "生活"},
		{6, "其他"},
	}
	for _, tc := range cases {
		got, err := CategoryByIndex(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("CategoryByIndex(%d) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}

	for _, bad := range []int{0, -1, 7, 100} {
		if _, err := CategoryByIndex(bad); err == nil {
			t.Errorf("CategoryByIndex(%d): expected error", bad)
		}
	}
}

func TestAttachmentExtension(t *testing.T) {
	cases := map[MessageType]string{
		MessageTypeImage:       "jpg",
		MessageTypeVideo:       "mp4",
		MessageTypeAudio:       "m4a",
		MessageTypeFile:        "file",
		MessageType("sticker"): "dat",
	}
	for mt, want := range cases {
		if got := AttachmentExtension(mt); got != want {
			t.Errorf("AttachmentExtension(%s) = %q, want %q", mt, got, want)
		}
	}
}
