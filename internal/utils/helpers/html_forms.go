package helpers

import (
	"fmt"
	"html"
)

func BuildResetCodeHTML(code, link string, minutes int) string {
	return fmt.Sprintf(`
<html>
  <body style="font-family:Arial,sans-serif; color:#0f172a; background:#f9f9f9;">
    <table width="100%%" cellpadding="0" cellspacing="0" bgcolor="#f9f9f9">
      <tr>
        <td align="center" style="padding:32px 0;">
          <table width="560" bgcolor="#fff" cellpadding="24" cellspacing="0" style="border:1px solid #e2e8f0; border-radius:12px;">
            <tr>
              <td>
                <h2 style="margin-top:0;">Password Reset Code</h2>
                <p>Use the code below to reset your password. This code will expire in <strong>%d minutes</strong>.</p>
                <p style="font-size:28px; letter-spacing:8px; font-weight:700; background:#f1f5f9; color:#111827; padding:12px 16px; border-radius:10px; text-align:center;">%s</p>
                <p>You can also open the reset page directly:</p>
                <p>
                  <a href="%s" style="display:inline-block; padding:10px 16px; background:#2563eb; color:#fff; text-decoration:none; border-radius:8px;">Open Reset Page</a>
                </p>
                <p style="color:#64748b; font-size:14px;">If you did not request this, you can ignore this email.</p>
              </td>
            </tr>
          </table>
        </td>
      </tr>
    </table>
  </body>
</html>
`, minutes, html.EscapeString(code), html.EscapeString(link))
}

func BuildResetCodeText(code, link string, minutes int) string {
	return fmt.Sprintf("Your password reset code is: %s\nThis code expires in %d minutes.\nOpen reset page: %s", code, minutes, link)
}

func BuildApprovalHTML(name, email, loginURL string) string {
	return fmt.Sprintf(`
<html>
  <body style="font-family:'Segoe UI',Arial,sans-serif; background:#f3f4f6; margin:0; padding:0;">
    <table width="100%%" cellpadding="0" cellspacing="0" bgcolor="#f3f4f6">
      <tr>
        <td align="center" style="padding:30px 0;">
          <table width="600" bgcolor="#fff" cellpadding="0" cellspacing="0" style="border-radius:8px; box-shadow:0 2px 8px rgba(0,0,0,0.1);">
            <tr>
              <td style="background:#2563eb; color:#fff; padding:20px 30px; text-align:center; border-radius:8px 8px 0 0;">
                <h2 style="margin:0;">Account Approval Confirmation</h2>
              </td>
            </tr>
            <tr>
              <td style="padding:30px; color:#333; line-height:1.6;">
                <p>Dear %s,</p>
                <p>We are pleased to inform you that your account registration with the <strong>Accounting Management System</strong> has been successfully <strong>approved</strong>.</p>
                <p>You may now log in to your account using the credentials you provided during registration.</p>
                <ul><li><strong>Username:</strong> %s</li></ul>
                <p style="text-align:center;">
                  <a href="%s" style="display:inline-block; padding:12px 30px; background:#2196F3; color:#fff; text-decoration:none; border-radius:6px; font-weight:bold;">Access Your Dashboard</a>
                </p>
                <p>Thank you for choosing our system. We look forward to supporting your accounting needs.</p>
                <p>Kind regards,<br><strong>Accounting System Administrator</strong></p>
              </td>
            </tr>
            <tr>
              <td style="font-size:12px; color:#666; text-align:center; padding:20px; border-top:1px solid #eee; background:#fafafa;">
                This is an automated message. Please do not reply directly to this email.
              </td>
            </tr>
          </table>
        </td>
      </tr>
    </table>
  </body>
</html>
`, html.EscapeString(name), html.EscapeString(email), html.EscapeString(loginURL))
}

func BuildApprovalText(name, email, loginURL string) string {
	return fmt.Sprintf("Dear %s,\n\n"+
		"We are pleased to inform you that your account has been approved!\n\n"+
		"You can now log in to your client dashboard using your credentials:\n"+
		"Email: %s\n\n"+
		"Login URL: %s\n\n"+
		"Best regards,\nAccounting System Team", name, email, loginURL)
}
