package main

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/restaurant-ops/labor-compliance/backend/internal/config"
	"github.com/restaurant-ops/labor-compliance/backend/internal/domain"
	"github.com/wneessen/go-mail"
)

// queuedMail 推迟 Data 的解码，直到知道邮件类型
type queuedMail struct {
	Type string          `json:"type"`
	To   string          `json:"to"`
	Data json.RawMessage `json:"data"`
}

// buildMail 根据邮件类型渲染模板，返回的错误都不值得重试
func buildMail(cfg *config.Config, queued *queuedMail) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(cfg.Email.SMTP.Username); err != nil {
		return nil, fmt.Errorf("无法设置邮件发件人: %w", err)
	}
	if err := m.To(queued.To); err != nil {
		return nil, fmt.Errorf("无法设置邮件收件人: %w", err)
	}

	switch queued.Type {
	case domain.MailTypeCriticalViolations:
		data := domain.CriticalViolationsMailData{}
		if err := json.Unmarshal(queued.Data, &data); err != nil {
			return nil, fmt.Errorf("邮件数据反序列化失败: %w", err)
		}
		tmpl, err := template.ParseFiles(filepath.Join(cfg.Email.TemplatesDir, "critical_violations_email.html"))
		if err != nil {
			return nil, fmt.Errorf("无法解析邮件模板: %w", err)
		}
		if err := m.SetBodyHTMLTemplate(tmpl, data); err != nil {
			return nil, fmt.Errorf("无法设置邮件正文: %w", err)
		}
		m.Subject(fmt.Sprintf("Planning %s - semaine du %s : violations critiques", data.RestaurantName, data.WeekStartDate))
	default:
		return nil, fmt.Errorf("不支持的邮件类型: %s", queued.Type)
	}

	return m, nil
}

func main() {
	/**********************************************
	 * 创建 logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * 读取配置文件
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * 创建邮件客户端
	 **********************************************/
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("无法创建邮件客户端", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	// 验证邮件客户端是否连接成功
	clientDialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(clientDialCtx); err != nil {
		logger.Error("无法连接到邮件服务器", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * 连接 RabbitMQ
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("无法连接到 RabbitMQ", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	// 创建通道
	ch, err := conn.Channel()
	if err != nil {
		logger.Error("无法创建通道", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	// 声明队列
	q, err := ch.QueueDeclare(
		cfg.Compliance.AlertQueue, // 队列名称
		true,                      // 是否持久化
		false,                     // 是否自动删除，设置为 false 可以避免没有消费者的时候自动删除队列
		false,                     // 是否独占，即是否允许多个消费者访问这个队列
		false,                     // 是否不等待，设置为 false，即等待 RabbitMQ 确认队列是否创建成功
		nil,                       // 额外参数
	)
	if err != nil {
		logger.Error("无法声明队列", slog.String("error", err.Error()))
		return
	}

	// 监听 CTRL+C
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// 消费消息
	msgs, err := ch.Consume(
		q.Name, // 队列
		"",     // 消费者标识，设置为空字符串，表示由 RabbitMQ 自动分配
		false,  // 是否自动确认消息
		false,  // 是否独占队列
		false,  // 必须设置为 false，因为 RabbitMQ 不支持这个参数
		false,  // 是否不等待，等待 RabbitMQ 响应
		nil,    // 额外参数
	)
	if err != nil {
		logger.Error("无法消费消息", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 用于关闭 goroutine 的上下文
	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					logger.Error("消息通道已关闭")
					return
				}
				logger.Info("收到消息", slog.Int("size", len(msg.Body)))

				queued := queuedMail{}
				if err := json.Unmarshal(msg.Body, &queued); err != nil {
					logger.Error("邮件信息反序列化失败", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				m, err := buildMail(cfg, &queued)
				if err != nil {
					logger.Error("无法构建邮件", slog.String("type", queued.Type), slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				// 发送邮件
				if err := client.DialAndSend(m); err != nil {
					logger.Error("邮件发送失败", slog.String("error", err.Error()))
					_ = msg.Nack(false, true) // 将消息重新入队
					continue
				}

				// 确认消息
				_ = msg.Ack(false)
			}
		}
	}()

	// 等待 CTRL+C 信号
	logger.Info("等待消息...（按 CTRL+C 退出）")
	<-sigChan

	// 优雅退出
	slog.Info("正在关闭 mail worker...")
	cancel()
	wg.Wait() // 等待所有 goroutine 完成
	slog.Info("mail worker 已成功关闭")
}
