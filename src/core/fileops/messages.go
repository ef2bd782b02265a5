package fileops

// Reply texts shown to chat users.
const (
	msgFileNotFound   = "文件 %s 不存在，请检查路径。"
	msgDirNotFound    = "目录 %s 不存在，请检查路径。"
	msgSourceNotFound = "源路径 %s 不存在，请检查路径。"
	msgIsDirectory    = "指定的路径是一个目录，而不是文件：%s"
	msgNotDirectory   = "指定路径 %s 不是一个目录。"
	msgOutsideBase    = "路径 %s 超出了文件根目录的范围。"
	msgBaseProtected  = "路径 %s 是文件根目录本身，不能删除或移动。"

	msgSendStarted = "开始发送文件 %s..."
	msgSendDone    = "文件 %s 已发送。"
	msgSendFailed  = "发送文件时发生错误: %v"

	msgFileDeleted      = "文件 %s 已成功删除。"
	msgFileDeleteFailed = "删除文件时发生错误: %v"
	msgDirDeleted       = "目录 %s 已成功删除。"
	msgDirDeleteFailed  = "删除目录时发生错误: %v"

	msgDirEmpty    = "目录 %s 是空的。"
	msgDirListing  = "目录 %s 的内容：\n%s"
	msgListFailed  = "读取目录时发生错误: %v"
	msgMoved       = "文件/目录 %s 已成功移动到 %s。"
	msgMoveFailed  = "移动文件/目录时发生错误: %v"
	msgCopied      = "文件/目录 %s 已成功复制到 %s。"
	msgCopyFailed  = "复制文件/目录时发生错误: %v"
	dirEntryMarker = "/"
)
